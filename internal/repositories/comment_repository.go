package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "team-task-hub.com/team-task-hub/internal/errors"
	model "team-task-hub.com/team-task-hub/internal/models"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	ctx, cancel := bound(ctx)
	defer cancel()

	return wrapStoreErr(r.db.WithContext(ctx).Create(comment).Error)
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	ctx, cancel := bound(ctx)
	defer cancel()

	var comment model.Comment
	err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, wrapStoreErr(err)
	}
	return &comment, nil
}

func (r *CommentRepository) ListByTask(ctx context.Context, taskID string) ([]model.Comment, error) {
	ctx, cancel := bound(ctx)
	defer cancel()

	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at asc").
		Find(&comments).Error
	return comments, wrapStoreErr(err)
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id, content string) error {
	ctx, cancel := bound(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":    content,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return wrapStoreErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := bound(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&model.Comment{}, "id = ?", id)
	if res.Error != nil {
		return false, wrapStoreErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}
