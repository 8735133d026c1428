package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	apperrors "team-task-hub.com/team-task-hub/internal/errors"
	model "team-task-hub.com/team-task-hub/internal/models"
	repository "team-task-hub.com/team-task-hub/internal/repositories"
)

// CommentService lets any viewer comment on a task; editing and deleting
// are restricted to the comment's author. Comments carry no audit trail.
type CommentService struct {
	comments *repository.CommentRepository
	tasks    *repository.TaskRepository
}

func NewCommentService(comments *repository.CommentRepository, tasks *repository.TaskRepository) *CommentService {
	return &CommentService{
		comments: comments,
		tasks:    tasks,
	}
}

func (s *CommentService) Create(ctx context.Context, taskID, actorID, content string, parentID *string) (*model.Comment, error) {
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := s.comments.FindByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.TaskID != taskID {
			v := apperrors.NewValidation()
			v.Add("parent_id", "parent comment must belong to the same task")
			return nil, v
		}
	}

	now := time.Now().UTC()
	comment := &model.Comment{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		UserID:    actorID,
		Content:   strings.TrimSpace(content),
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Edit(ctx context.Context, id, actorID, content string) (*model.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actorID {
		return nil, apperrors.ErrNotAllowed
	}
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	if err := s.comments.UpdateContent(ctx, id, strings.TrimSpace(content)); err != nil {
		return nil, err
	}
	return s.comments.FindByID(ctx, id)
}

// Delete is idempotent: an absent comment is a no-op success.
func (s *CommentService) Delete(ctx context.Context, id, actorID string) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCommentNotFound) {
			return nil
		}
		return err
	}
	if comment.UserID != actorID {
		return apperrors.ErrNotAllowed
	}

	_, err = s.comments.Delete(ctx, id)
	return err
}

func (s *CommentService) ListByTask(ctx context.Context, taskID string) ([]model.Comment, error) {
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.comments.ListByTask(ctx, taskID)
}

func validateCommentContent(content string) error {
	trimmed := strings.TrimSpace(content)
	v := apperrors.NewValidation()
	if trimmed == "" {
		v.Add("content", "is required")
	} else if utf8.RuneCountInString(trimmed) > 2000 {
		v.Add("content", "must be at most 2000 characters")
	}
	if v.Empty() {
		return nil
	}
	return v
}
