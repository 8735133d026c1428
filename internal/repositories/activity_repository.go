package repository

import (
	"context"

	"gorm.io/gorm"

	model "team-task-hub.com/team-task-hub/internal/models"
)

// ActivityRepository is append-only: it exposes no update or delete.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Append(ctx context.Context, entry *model.ActivityLog) error {
	ctx, cancel := bound(ctx)
	defer cancel()

	return wrapStoreErr(r.db.WithContext(ctx).Create(entry).Error)
}

func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	ctx, cancel := bound(ctx)
	defer cancel()

	var entries []model.ActivityLog
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&entries).Error
	return entries, wrapStoreErr(err)
}

func (r *ActivityRepository) ListByTask(ctx context.Context, taskID string) ([]model.ActivityLog, error) {
	ctx, cancel := bound(ctx)
	defer cancel()

	var entries []model.ActivityLog
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at desc").
		Find(&entries).Error
	return entries, wrapStoreErr(err)
}
