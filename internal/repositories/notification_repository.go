package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "team-task-hub.com/team-task-hub/internal/errors"
	model "team-task-hub.com/team-task-hub/internal/models"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	ctx, cancel := bound(ctx)
	defer cancel()

	return wrapStoreErr(r.db.WithContext(ctx).Create(n).Error)
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*model.Notification, error) {
	ctx, cancel := bound(ctx)
	defer cancel()

	var n model.Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, wrapStoreErr(err)
	}
	return &n, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	ctx, cancel := bound(ctx)
	defer cancel()

	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&notifications).Error
	return notifications, wrapStoreErr(err)
}

// MarkRead is idempotent: marking an already-read notification succeeds.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	ctx, cancel := bound(ctx)
	defer cancel()

	return wrapStoreErr(r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Update("read", true).Error)
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	ctx, cancel := bound(ctx)
	defer cancel()

	return wrapStoreErr(r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error)
}
