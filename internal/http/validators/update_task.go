package validators

import (
	"time"

	"team-task-hub.com/team-task-hub/internal/constants"
	dto "team-task-hub.com/team-task-hub/internal/data_models"
	apperrors "team-task-hub.com/team-task-hub/internal/errors"
	"team-task-hub.com/team-task-hub/internal/services"
)

func ParseUpdateTaskRequest(r *dto.UpdateTaskRequest) (services.UpdateTaskInput, error) {
	v := apperrors.NewValidation()

	var due *time.Time
	if r.DueDate != nil {
		parsed, err := time.Parse(dateLayout, *r.DueDate)
		if err != nil {
			v.Add("due_date", "must be a date in YYYY-MM-DD format")
		} else {
			due = &parsed
		}
	}

	if !v.Empty() {
		return services.UpdateTaskInput{}, v
	}

	patch := services.UpdateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		AssigneeID:  r.AssigneeID,
		DueDate:     due,
		Tags:        r.Tags,
	}
	if r.Priority != nil {
		p := constants.TaskPriority(*r.Priority)
		patch.Priority = &p
	}
	if r.Status != nil {
		s := constants.TaskStatus(*r.Status)
		patch.Status = &s
	}
	return patch, nil
}
