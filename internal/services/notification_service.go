package services

import (
	"context"

	apperrors "team-task-hub.com/team-task-hub/internal/errors"
	model "team-task-hub.com/team-task-hub/internal/models"
	repository "team-task-hub.com/team-task-hub/internal/repositories"
)

// NotificationService only ever flips the read flag; creation belongs to
// the side-effect pipeline.
type NotificationService struct {
	notifications *repository.NotificationRepository
}

func NewNotificationService(notifications *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, actorID string) error {
	n, err := s.notifications.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != actorID {
		return apperrors.ErrNotAllowed
	}
	return s.notifications.MarkRead(ctx, id)
}

// MarkAllRead is idempotent; a second call finds nothing unread and
// succeeds.
func (s *NotificationService) MarkAllRead(ctx context.Context, actorID string) error {
	return s.notifications.MarkAllRead(ctx, actorID)
}
