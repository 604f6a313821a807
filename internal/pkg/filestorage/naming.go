package filestorage

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Purpose tells what an uploaded file is used for
type Purpose string

const (
	PurposeProfileImage Purpose = "profile"
	PurposeCV           Purpose = "cv"
	PurposeCoverLetter  Purpose = "cover"
	PurposeLogo         Purpose = "logo"
)

var (
	imageExtensions    = []string{".jpg", ".jpeg", ".png"}
	documentExtensions = []string{".pdf", ".doc", ".docx"}
)

// AllowedExtensions returns the lowercase extensions accepted for purpose
func (p Purpose) AllowedExtensions() []string {
	switch p {
	case PurposeProfileImage, PurposeLogo:
		return imageExtensions
	case PurposeCV, PurposeCoverLetter:
		return documentExtensions
	}
	return nil
}

// Allows reports whether filename has an extension accepted for p
func (p Purpose) Allows(filename string) bool {
	ext := Ext(filename)
	for _, allowed := range p.AllowedExtensions() {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Ext returns the lowercase extension of filename
func Ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// IsImage reports whether filename is an accepted image
func IsImage(filename string) bool { return PurposeProfileImage.Allows(filename) }

// IsDocument reports whether filename is an accepted document
func IsDocument(filename string) bool { return PurposeCV.Allows(filename) }

// GenerateName builds a collision-resistant stored name:
// <username>_<purpose>_<unixnano>_<8 hex><ext>
func GenerateName(username string, purpose Purpose, originalName string) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s_%s_%d_%s%s", SanitizeName(username), purpose, time.Now().UnixNano(), id, Ext(originalName))
}

// SanitizeName strips any directory components so names stay inside the storage root
func SanitizeName(name string) string {
	base := filepath.Base(filepath.Clean("/" + strings.ReplaceAll(name, "\\", "/")))
	if base == "/" || base == "." {
		return ""
	}
	return base
}

// ContentType guesses the MIME type from the extension
func ContentType(filename string) string {
	if ct := mime.TypeByExtension(Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
