package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/unizg/careerhub/internal/app/models"
	"github.com/unizg/careerhub/internal/app/repositories"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
)

// AdviceService runs the open advice forum
type AdviceService struct {
	adviceRepo *repositories.AdviceRepository
	logger     zerolog.Logger
}

// NewAdviceService creates a new AdviceService
func NewAdviceService(adviceRepo *repositories.AdviceRepository, logger zerolog.Logger) *AdviceService {
	return &AdviceService{adviceRepo: adviceRepo, logger: logger}
}

// List returns all posts
func (s *AdviceService) List(ctx context.Context) ([]models.AdvicePost, error) {
	return s.adviceRepo.List(ctx)
}

// Create posts a question. Tags may arrive as separate values or comma separated.
func (s *AdviceService) Create(ctx context.Context, question string, tags []string) (*models.AdvicePost, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperrors.NewInvalidInputError("question must not be empty")
	}
	post := &models.AdvicePost{
		Question:  question,
		Tags:      splitTags(tags),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.adviceRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	s.logger.Debug().Int("postID", post.ID).Msg("Advice post created")
	return post, nil
}

// Reply answers post postID
func (s *AdviceService) Reply(ctx context.Context, postID int, username, reply string) (*models.AdvicePost, error) {
	username, reply = strings.TrimSpace(username), strings.TrimSpace(reply)
	if username == "" || reply == "" {
		return nil, apperrors.NewInvalidInputError("username and reply must not be empty")
	}
	return s.adviceRepo.AddReply(ctx, postID, models.Reply{Username: username, Reply: reply})
}

func splitTags(raw []string) []string {
	seen := make(map[string]bool)
	tags := make([]string, 0, len(raw))
	for _, value := range raw {
		for _, tag := range strings.Split(value, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" || seen[strings.ToLower(tag)] {
				continue
			}
			seen[strings.ToLower(tag)] = true
			tags = append(tags, tag)
		}
	}
	return tags
}
