package services

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/unizg/careerhub/internal/app/models"
	"gopkg.in/yaml.v3"
)

//go:embed content/catalog.yaml
var defaultCatalog []byte

// ContentService serves the static catalogs shown on the public pages
type ContentService struct {
	catalog models.Catalog
}

// NewContentService loads the catalog from path, or the built-in one when path is empty
func NewContentService(path string) (*ContentService, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read content catalog: %w", err)
		}
		data = b
	}
	var catalog models.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse content catalog: %w", err)
	}
	if catalog.Events == nil {
		catalog.Events = []models.Event{}
	}
	if catalog.Mentorships == nil {
		catalog.Mentorships = []models.Mentorship{}
	}
	if catalog.Careers == nil {
		catalog.Careers = []models.Career{}
	}
	if catalog.Connect == nil {
		catalog.Connect = []models.ConnectEntry{}
	}
	return &ContentService{catalog: catalog}, nil
}

func (s *ContentService) Events() []models.Event             { return s.catalog.Events }
func (s *ContentService) Mentorships() []models.Mentorship   { return s.catalog.Mentorships }
func (s *ContentService) Careers() []models.Career           { return s.catalog.Careers }
func (s *ContentService) ConnectData() []models.ConnectEntry { return s.catalog.Connect }
