package services

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"team-task-hub.com/team-task-hub/internal/constants"
	apperrors "team-task-hub.com/team-task-hub/internal/errors"
	model "team-task-hub.com/team-task-hub/internal/models"
	"team-task-hub.com/team-task-hub/internal/permissions"
	repository "team-task-hub.com/team-task-hub/internal/repositories"
	"team-task-hub.com/team-task-hub/internal/sideeffects"
)

// ProfileService covers team administration: member provisioning and
// role assignment, both manager-gated. Everything else about profiles is
// read-only here.
type ProfileService struct {
	profiles *repository.ProfileRepository
	pipeline *sideeffects.Pipeline
}

func NewProfileService(profiles *repository.ProfileRepository, pipeline *sideeffects.Pipeline) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		pipeline: pipeline,
	}
}

type CreateProfileInput struct {
	ID       string // optional; identity providers may supply their own
	FullName string
	Email    string
	Timezone string
}

func (s *ProfileService) List(ctx context.Context) ([]model.Profile, error) {
	return s.profiles.List(ctx)
}

func (s *ProfileService) Get(ctx context.Context, id string) (*model.Profile, error) {
	return s.profiles.FindByID(ctx, id)
}

func (s *ProfileService) RoleOf(ctx context.Context, userID string) (constants.Role, error) {
	return s.profiles.RoleOf(ctx, userID)
}

func (s *ProfileService) Create(ctx context.Context, input CreateProfileInput, actorID string) (*model.Profile, error) {
	role, err := s.profiles.RoleOf(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !permissions.Can(role, actorID, nil, permissions.OpManageTeam) {
		return nil, apperrors.ErrNotAllowed
	}

	v := apperrors.NewValidation()
	if strings.TrimSpace(input.FullName) == "" {
		v.Add("full_name", "is required")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		v.Add("email", "must be a valid email address")
	}
	if !v.Empty() {
		return nil, v
	}

	if input.ID == "" {
		input.ID = uuid.NewString()
	}
	if input.Timezone == "" {
		input.Timezone = "UTC"
	}

	now := time.Now().UTC()
	profile := &model.Profile{
		ID:        input.ID,
		FullName:  strings.TrimSpace(input.FullName),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Timezone:  input.Timezone,
		CreatedAt: now,
		UpdatedAt: now,
		Role:      constants.RoleTeamMember,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) SetRole(ctx context.Context, userID string, newRole constants.Role, actorID string) error {
	actorRole, err := s.profiles.RoleOf(ctx, actorID)
	if err != nil {
		return err
	}
	if !permissions.Can(actorRole, actorID, nil, permissions.OpManageTeam) {
		return apperrors.ErrNotAllowed
	}

	if !constants.ValidRole(newRole) {
		v := apperrors.NewValidation()
		v.Add("role", "invalid role")
		return v
	}

	target, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.profiles.SetRole(ctx, userID, newRole); err != nil {
		return err
	}

	s.pipeline.Emit(sideeffects.Event{
		ActorID: actorID,
		Action:  constants.ActionRoleChanged,
		Details: map[string]interface{}{
			"user_id": userID,
			"role":    change(target.Role, newRole),
		},
	})

	return nil
}
