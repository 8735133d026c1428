package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"team-task-hub.com/team-task-hub/internal/constants"
	apperrors "team-task-hub.com/team-task-hub/internal/errors"
	model "team-task-hub.com/team-task-hub/internal/models"
	"team-task-hub.com/team-task-hub/internal/permissions"
	repository "team-task-hub.com/team-task-hub/internal/repositories"
	"team-task-hub.com/team-task-hub/internal/sideeffects"
)

// NomenclatureService edits only the format fields. The counter moves
// solely through the identifier allocator, and already-minted task
// identifiers are never rewritten.
type NomenclatureService struct {
	config   *repository.NomenclatureRepository
	profiles *repository.ProfileRepository
	pipeline *sideeffects.Pipeline
}

func NewNomenclatureService(
	config *repository.NomenclatureRepository,
	profiles *repository.ProfileRepository,
	pipeline *sideeffects.Pipeline,
) *NomenclatureService {
	return &NomenclatureService{
		config:   config,
		profiles: profiles,
		pipeline: pipeline,
	}
}

func (s *NomenclatureService) Get(ctx context.Context) (*model.NomenclatureConfig, error) {
	return s.config.Get(ctx)
}

type UpdateNomenclatureInput struct {
	Prefix    string
	Separator string
	Padding   int
}

func (s *NomenclatureService) UpdateFormat(ctx context.Context, input UpdateNomenclatureInput, actorID string) (*model.NomenclatureConfig, error) {
	role, err := s.profiles.RoleOf(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !permissions.Can(role, actorID, nil, permissions.OpEditConfig) {
		return nil, apperrors.ErrNotAllowed
	}

	prefix := strings.ToUpper(strings.TrimSpace(input.Prefix))

	v := apperrors.NewValidation()
	if l := utf8.RuneCountInString(prefix); l < 1 || l > 5 {
		v.Add("prefix", "must be between 1 and 5 characters")
	}
	if !constants.ValidSeparator(input.Separator) {
		v.Add("separator", `must be one of "-", "_", ".", "none"`)
	}
	if input.Padding < 0 || input.Padding > 10 {
		v.Add("padding", "must be between 0 and 10")
	}
	if !v.Empty() {
		return nil, v
	}

	current, err := s.config.Get(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.config.UpdateFormat(ctx, current.ID, prefix, input.Separator, input.Padding); err != nil {
		return nil, err
	}

	s.pipeline.Emit(sideeffects.Event{
		ActorID: actorID,
		Action:  constants.ActionConfigUpdated,
		Details: map[string]interface{}{
			"prefix":    change(current.Prefix, prefix),
			"separator": change(current.Separator, input.Separator),
			"padding":   change(current.Padding, input.Padding),
		},
	})

	return s.config.Get(ctx)
}
