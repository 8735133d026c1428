package services

import (
	"context"

	model "team-task-hub.com/team-task-hub/internal/models"
	repository "team-task-hub.com/team-task-hub/internal/repositories"
)

const defaultActivityLimit = 50

// ActivityService is read-only; the side-effect pipeline is the sole
// writer of the log.
type ActivityService struct {
	activities *repository.ActivityRepository
}

func NewActivityService(activities *repository.ActivityRepository) *ActivityService {
	return &ActivityService{activities: activities}
}

func (s *ActivityService) Recent(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return s.activities.ListRecent(ctx, limit)
}

func (s *ActivityService) ForTask(ctx context.Context, taskID string) ([]model.ActivityLog, error) {
	return s.activities.ListByTask(ctx, taskID)
}
