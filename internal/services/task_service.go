package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"team-task-hub.com/team-task-hub/internal/constants"
	apperrors "team-task-hub.com/team-task-hub/internal/errors"
	"team-task-hub.com/team-task-hub/internal/identifier"
	model "team-task-hub.com/team-task-hub/internal/models"
	"team-task-hub.com/team-task-hub/internal/permissions"
	repository "team-task-hub.com/team-task-hub/internal/repositories"
	"team-task-hub.com/team-task-hub/internal/sideeffects"
)

// TaskService is the only writer of task state. Every mutation goes
// through the permission evaluator, and every committed mutation emits
// exactly one pipeline event.
type TaskService struct {
	tasks     *repository.TaskRepository
	profiles  *repository.ProfileRepository
	allocator identifier.Allocator
	pipeline  *sideeffects.Pipeline
}

func NewTaskService(
	tasks *repository.TaskRepository,
	profiles *repository.ProfileRepository,
	allocator identifier.Allocator,
	pipeline *sideeffects.Pipeline,
) *TaskService {
	return &TaskService{
		tasks:     tasks,
		profiles:  profiles,
		allocator: allocator,
		pipeline:  pipeline,
	}
}

type CreateTaskInput struct {
	Title       string
	Description string
	AssigneeID  *string
	Priority    constants.TaskPriority
	Status      constants.TaskStatus
	DueDate     time.Time
	Tags        []string
}

// UpdateTaskInput is a partial patch: nil fields are left untouched.
// An empty-string AssigneeID clears the assignment.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	AssigneeID  *string
	Priority    *constants.TaskPriority
	Status      *constants.TaskStatus
	DueDate     *time.Time
	Tags        []string
}

func (in UpdateTaskInput) touchesNonStatus() bool {
	return in.Title != nil || in.Description != nil || in.AssigneeID != nil ||
		in.Priority != nil || in.DueDate != nil || in.Tags != nil
}

func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput, actorID string) (*model.Task, error) {
	role, err := s.profiles.RoleOf(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !permissions.Can(role, actorID, nil, permissions.OpCreateTask) {
		return nil, apperrors.ErrNotAllowed
	}

	if input.Priority == "" {
		input.Priority = constants.PriorityMedium
	}
	if input.Status == "" {
		input.Status = constants.StatusNotStarted
	}
	if err := validateCreateTask(input); err != nil {
		return nil, err
	}

	if input.AssigneeID != nil {
		if _, err := s.profiles.FindByID(ctx, *input.AssigneeID); err != nil {
			return nil, err
		}
	}

	// Identifier allocation failure aborts the whole creation; no task
	// row exists without a minted identifier.
	taskID, err := s.allocator.Next(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &model.Task{
		ID:          uuid.NewString(),
		TaskID:      taskID,
		Title:       input.Title,
		Description: input.Description,
		AssigneeID:  input.AssigneeID,
		AssignerID:  actorID,
		Priority:    input.Priority,
		Status:      input.Status,
		DueDate:     input.DueDate,
		Tags:        model.StringList(input.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Status == constants.StatusCompleted {
		task.CompletedAt = &now
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.pipeline.Emit(sideeffects.Event{
		ActorID:    actorID,
		Action:     constants.ActionTaskCreated,
		TaskID:     &task.ID,
		TaskRef:    task.TaskID,
		TaskTitle:  task.Title,
		AssigneeID: task.AssigneeID,
		Reassigned: task.AssigneeID != nil,
		Details: map[string]interface{}{
			"task_id":  task.TaskID,
			"title":    task.Title,
			"priority": task.Priority,
			"status":   task.Status,
			"due_date": task.DueDate.Format("2006-01-02"),
		},
	})

	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, patch UpdateTaskInput, actorID string) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role, err := s.profiles.RoleOf(ctx, actorID)
	if err != nil {
		return nil, err
	}

	// Per-field gates: status has its own rule, assignment is its own
	// operation, anything else is a general edit.
	if patch.Status != nil && !permissions.Can(role, actorID, task, permissions.OpChangeStatus) {
		return nil, apperrors.ErrNotAllowed
	}
	if patch.AssigneeID != nil && !permissions.Can(role, actorID, task, permissions.OpReassignTask) {
		return nil, apperrors.ErrNotAllowed
	}
	if patch.touchesNonStatus() && !permissions.Can(role, actorID, task, permissions.OpEditTask) {
		return nil, apperrors.ErrNotAllowed
	}

	if err := validateUpdateTask(patch); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fields := map[string]interface{}{"updated_at": now}

	details := make(map[string]interface{})
	if patch.Title != nil && *patch.Title != task.Title {
		fields["title"] = *patch.Title
		details["title"] = change(task.Title, *patch.Title)
	}
	if patch.Description != nil && *patch.Description != task.Description {
		fields["description"] = *patch.Description
		details["description"] = change(task.Description, *patch.Description)
	}
	if patch.Priority != nil && *patch.Priority != task.Priority {
		fields["priority"] = *patch.Priority
		details["priority"] = change(task.Priority, *patch.Priority)
	}
	if patch.DueDate != nil && !patch.DueDate.Equal(task.DueDate) {
		fields["due_date"] = *patch.DueDate
		details["due_date"] = change(task.DueDate.Format("2006-01-02"), patch.DueDate.Format("2006-01-02"))
	}
	if patch.Tags != nil {
		fields["tags"] = model.StringList(patch.Tags)
		details["tags"] = change(task.Tags, patch.Tags)
	}

	var newAssignee *string
	assigneeChanged := false
	if patch.AssigneeID != nil {
		if *patch.AssigneeID != "" {
			if _, err := s.profiles.FindByID(ctx, *patch.AssigneeID); err != nil {
				return nil, err
			}
			newAssignee = patch.AssigneeID
		}
		assigneeChanged = !sameAssignee(task.AssigneeID, newAssignee)
		if assigneeChanged {
			if newAssignee != nil {
				fields["assignee_id"] = *newAssignee
			} else {
				fields["assignee_id"] = nil
			}
			details["assignee_id"] = change(task.AssigneeID, newAssignee)
		}
	}

	statusChanged := false
	oldStatus := task.Status
	if patch.Status != nil && *patch.Status != task.Status {
		statusChanged = true
		fields["status"] = *patch.Status
		details["status"] = change(task.Status, *patch.Status)

		// completed_at is non-null exactly while status is completed.
		if *patch.Status == constants.StatusCompleted {
			fields["completed_at"] = now
		} else if task.Status == constants.StatusCompleted {
			fields["completed_at"] = nil
		}
	}

	if len(fields) == 1 {
		// Nothing actually changed.
		return task, nil
	}

	if err := s.tasks.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}

	updated, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	action := constants.ActionTaskUpdated
	if statusChanged {
		action = constants.ActionTaskStatusChanged
	} else if assigneeChanged {
		action = constants.ActionTaskAssigned
	}

	ev := sideeffects.Event{
		ActorID:    actorID,
		Action:     action,
		TaskID:     &updated.ID,
		TaskRef:    updated.TaskID,
		TaskTitle:  updated.Title,
		AssigneeID: updated.AssigneeID,
		Reassigned: assigneeChanged,
		Details:    details,
	}
	if statusChanged {
		ev.OldStatus = oldStatus
		ev.NewStatus = updated.Status
	}
	s.pipeline.Emit(ev)

	return updated, nil
}

// DeleteTask is manager-only and idempotent: deleting an absent task is a
// no-op success. Comments and notifications referencing the task are left
// in place.
func (s *TaskService) DeleteTask(ctx context.Context, id, actorID string) error {
	role, err := s.profiles.RoleOf(ctx, actorID)
	if err != nil {
		return err
	}
	if !permissions.Can(role, actorID, nil, permissions.OpDeleteTask) {
		return apperrors.ErrNotAllowed
	}

	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrTaskNotFound) {
			return nil
		}
		return err
	}

	deleted, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return nil
	}

	s.pipeline.Emit(sideeffects.Event{
		ActorID:   actorID,
		Action:    constants.ActionTaskDeleted,
		TaskID:    &task.ID,
		TaskRef:   task.TaskID,
		TaskTitle: task.Title,
		Details: map[string]interface{}{
			"task_id": task.TaskID,
			"title":   task.Title,
		},
	})

	return nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	return s.tasks.List(ctx, filter)
}

func validateCreateTask(input CreateTaskInput) error {
	v := apperrors.NewValidation()

	titleLen := utf8.RuneCountInString(input.Title)
	if titleLen < 3 || titleLen > 200 {
		v.Add("title", "must be between 3 and 200 characters")
	}
	if utf8.RuneCountInString(input.Description) > 2000 {
		v.Add("description", "must be at most 2000 characters")
	}
	if input.DueDate.IsZero() {
		v.Add("due_date", "is required")
	}
	if !constants.ValidPriority(input.Priority) {
		v.Add("priority", "invalid priority")
	}
	if !constants.ValidStatus(input.Status) {
		v.Add("status", "invalid status")
	}

	if v.Empty() {
		return nil
	}
	return v
}

func validateUpdateTask(patch UpdateTaskInput) error {
	v := apperrors.NewValidation()

	if patch.Title != nil {
		titleLen := utf8.RuneCountInString(*patch.Title)
		if titleLen < 3 || titleLen > 200 {
			v.Add("title", "must be between 3 and 200 characters")
		}
	}
	if patch.Description != nil && utf8.RuneCountInString(*patch.Description) > 2000 {
		v.Add("description", "must be at most 2000 characters")
	}
	if patch.DueDate != nil && patch.DueDate.IsZero() {
		v.Add("due_date", "must be a valid date")
	}
	if patch.Priority != nil && !constants.ValidPriority(*patch.Priority) {
		v.Add("priority", "invalid priority")
	}
	if patch.Status != nil && !constants.ValidStatus(*patch.Status) {
		v.Add("status", "invalid status")
	}

	if v.Empty() {
		return nil
	}
	return v
}

func sameAssignee(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func change(old, new interface{}) map[string]interface{} {
	return map[string]interface{}{"old": old, "new": new}
}
