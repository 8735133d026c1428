package validators

import (
	"time"

	"team-task-hub.com/team-task-hub/internal/constants"
	dto "team-task-hub.com/team-task-hub/internal/data_models"
	apperrors "team-task-hub.com/team-task-hub/internal/errors"
	"team-task-hub.com/team-task-hub/internal/services"
)

const dateLayout = "2006-01-02"

// ParseCreateTaskRequest checks the request shape and converts it into a
// service input. Field-level business rules (lengths, enum membership)
// are enforced again by the service; this layer only rejects what cannot
// be represented at all.
func ParseCreateTaskRequest(r *dto.CreateTaskRequest) (services.CreateTaskInput, error) {
	v := apperrors.NewValidation()

	if r.Title == "" {
		v.Add("title", "is required")
	}
	if r.DueDate == "" {
		v.Add("due_date", "is required")
	}

	var due time.Time
	if r.DueDate != "" {
		parsed, err := time.Parse(dateLayout, r.DueDate)
		if err != nil {
			v.Add("due_date", "must be a date in YYYY-MM-DD format")
		} else {
			due = parsed
		}
	}

	if !v.Empty() {
		return services.CreateTaskInput{}, v
	}

	return services.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		AssigneeID:  r.AssigneeID,
		Priority:    constants.TaskPriority(r.Priority),
		Status:      constants.TaskStatus(r.Status),
		DueDate:     due,
		Tags:        r.Tags,
	}, nil
}
