package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	appauth "github.com/unizg/careerhub/internal/app/auth"
	"github.com/unizg/careerhub/internal/app/models"
	"github.com/unizg/careerhub/internal/app/repositories"
)

// NotificationService stores student notifications and pushes them live
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	guard            *appauth.Guard
	publisher        Publisher
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService. A nil publisher disables live push.
func NewNotificationService(
	notificationRepo *repositories.NotificationRepository,
	guard *appauth.Guard,
	publisher Publisher,
	logger zerolog.Logger,
) *NotificationService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &NotificationService{
		notificationRepo: notificationRepo,
		guard:            guard,
		publisher:        publisher,
		logger:           logger,
	}
}

// List returns the caller's notifications newest first, with the unread count
func (s *NotificationService) List(ctx context.Context, p *appauth.Principal) ([]models.Notification, int, error) {
	if err := s.guard.Authorize(p, models.RoleStudent); err != nil {
		return nil, 0, err
	}
	list, err := s.notificationRepo.ListByUsername(ctx, p.Username)
	if err != nil {
		return nil, 0, err
	}
	unread := 0
	for _, n := range list {
		if !n.Read {
			unread++
		}
	}
	return list, unread, nil
}

// MarkAllRead flags all of the caller's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, p *appauth.Principal) error {
	if err := s.guard.Authorize(p, models.RoleStudent); err != nil {
		return err
	}
	return s.MarkAllReadFor(ctx, p.Username)
}

// MarkAllReadFor is used by the websocket handler, which has already identified the user
func (s *NotificationService) MarkAllReadFor(ctx context.Context, username string) error {
	n, err := s.notificationRepo.MarkAllRead(ctx, username)
	if err != nil {
		return err
	}
	s.logger.Debug().Str("username", username).Int("count", n).Msg("Notifications marked as read")
	return nil
}

// Notify appends a notification for username and pushes it to open connections
func (s *NotificationService) Notify(ctx context.Context, username, message string) error {
	err := s.notificationRepo.Append(ctx, models.Notification{
		Username:  username,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	s.publisher.Notify(username, message)
	return nil
}
