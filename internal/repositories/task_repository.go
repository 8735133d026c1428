package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"team-task-hub.com/team-task-hub/internal/constants"
	apperrors "team-task-hub.com/team-task-hub/internal/errors"
	model "team-task-hub.com/team-task-hub/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// TaskFilter narrows List; zero values mean "no filter".
type TaskFilter struct {
	AssigneeID string
	Status     constants.TaskStatus
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	ctx, cancel := bound(ctx)
	defer cancel()

	return wrapStoreErr(r.db.WithContext(ctx).Create(task).Error)
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	ctx, cancel := bound(ctx)
	defer cancel()

	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, wrapStoreErr(err)
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	ctx, cancel := bound(ctx)
	defer cancel()

	query := r.db.WithContext(ctx).Order("created_at desc")
	if filter.AssigneeID != "" {
		query = query.Where("assignee_id = ?", filter.AssigneeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var tasks []model.Task
	err := query.Find(&tasks).Error
	return tasks, wrapStoreErr(err)
}

// UpdateFields writes only the given columns, so concurrent updates to
// disjoint field sets on the same task both land.
func (r *TaskRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	ctx, cancel := bound(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return wrapStoreErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

// Delete reports whether a row was actually removed.
func (r *TaskRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := bound(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return false, wrapStoreErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}
