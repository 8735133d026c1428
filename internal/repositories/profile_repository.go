package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"team-task-hub.com/team-task-hub/internal/constants"
	apperrors "team-task-hub.com/team-task-hub/internal/errors"
	model "team-task-hub.com/team-task-hub/internal/models"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	ctx, cancel := bound(ctx)
	defer cancel()

	return wrapStoreErr(r.db.WithContext(ctx).Create(profile).Error)
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	ctx, cancel := bound(ctx)
	defer cancel()

	var profile model.Profile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, wrapStoreErr(err)
	}

	role, err := r.RoleOf(ctx, id)
	if err != nil {
		return nil, err
	}
	profile.Role = role
	return &profile, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]model.Profile, error) {
	ctx, cancel := bound(ctx)
	defer cancel()

	var profiles []model.Profile
	if err := r.db.WithContext(ctx).Order("full_name asc").Find(&profiles).Error; err != nil {
		return nil, wrapStoreErr(err)
	}

	var roles []model.UserRole
	if err := r.db.WithContext(ctx).Find(&roles).Error; err != nil {
		return nil, wrapStoreErr(err)
	}

	byUser := make(map[string]constants.Role, len(roles))
	for _, ur := range roles {
		byUser[ur.UserID] = ur.Role
	}
	for i := range profiles {
		role, ok := byUser[profiles[i].ID]
		if !ok {
			role = constants.RoleTeamMember
		}
		profiles[i].Role = role
	}
	return profiles, nil
}

// RoleOf defaults to team_member when no role row exists.
func (r *ProfileRepository) RoleOf(ctx context.Context, userID string) (constants.Role, error) {
	ctx, cancel := bound(ctx)
	defer cancel()

	var ur model.UserRole
	err := r.db.WithContext(ctx).First(&ur, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return constants.RoleTeamMember, nil
		}
		return "", wrapStoreErr(err)
	}
	return ur.Role, nil
}

func (r *ProfileRepository) SetRole(ctx context.Context, userID string, role constants.Role) error {
	ctx, cancel := bound(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&model.UserRole{}).
		Where("user_id = ?", userID).
		Update("role", role)
	if res.Error != nil {
		return wrapStoreErr(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	row := &model.UserRole{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	return wrapStoreErr(r.db.WithContext(ctx).Create(row).Error)
}
