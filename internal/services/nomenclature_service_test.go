package services

import (
	"context"
	"errors"
	"testing"

	"team-task-hub.com/team-task-hub/internal/constants"
	apperrors "team-task-hub.com/team-task-hub/internal/errors"
)

func TestNomenclatureService_ManagerOnlyUpdate(t *testing.T) {
	env := newTestEnv(t)
	manager := seedProfile(t, env.db, "Alice Manager", constants.RoleManager)
	member := seedProfile(t, env.db, "Bob Member", constants.RoleTeamMember)

	ctx := context.Background()

	_, err := env.nomenclature.UpdateFormat(ctx, UpdateNomenclatureInput{
		Prefix: "JOB", Separator: "_", Padding: 4,
	}, member)
	if !errors.Is(err, apperrors.ErrNotAllowed) {
		t.Errorf("expected ErrNotAllowed for member, got %v", err)
	}

	cfg, err := env.nomenclature.UpdateFormat(ctx, UpdateNomenclatureInput{
		Prefix: "job", Separator: "_", Padding: 4,
	}, manager)
	if err != nil {
		t.Fatalf("manager update failed: %v", err)
	}
	if cfg.Prefix != "JOB" {
		t.Errorf("prefix must be upper-cased, got %q", cfg.Prefix)
	}
	if cfg.Separator != "_" || cfg.Padding != 4 {
		t.Errorf("format fields not applied: %+v", cfg)
	}
	if cfg.Counter != 0 {
		t.Errorf("format edit must not touch the counter, got %d", cfg.Counter)
	}
}

func TestNomenclatureService_Validation(t *testing.T) {
	env := newTestEnv(t)
	manager := seedProfile(t, env.db, "Alice Manager", constants.RoleManager)

	_, err := env.nomenclature.UpdateFormat(context.Background(), UpdateNomenclatureInput{
		Prefix: "TOOLONGPREFIX", Separator: "/", Padding: 99,
	}, manager)

	var valErr *apperrors.Validation
	if !errors.As(err, &valErr) {
		t.Fatalf("expected Validation error, got %v", err)
	}
	for _, field := range []string{"prefix", "separator", "padding"} {
		if _, ok := valErr.Fields[field]; !ok {
			t.Errorf("expected validation message for %s", field)
		}
	}
}

func TestProfileService_RoleManagement(t *testing.T) {
	env := newTestEnv(t)
	manager := seedProfile(t, env.db, "Alice Manager", constants.RoleManager)
	member := seedProfile(t, env.db, "Bob Member", constants.RoleTeamMember)

	ctx := context.Background()

	// Role defaults to team_member when no row exists.
	role, err := env.profiles.RoleOf(ctx, member)
	if err != nil {
		t.Fatalf("failed to resolve role: %v", err)
	}
	if role != constants.RoleTeamMember {
		t.Errorf("expected default team_member, got %s", role)
	}

	if err := env.profiles.SetRole(ctx, member, constants.RoleManager, member); !errors.Is(err, apperrors.ErrNotAllowed) {
		t.Errorf("expected ErrNotAllowed for member self-promotion, got %v", err)
	}

	if err := env.profiles.SetRole(ctx, member, constants.RoleManager, manager); err != nil {
		t.Fatalf("manager role change failed: %v", err)
	}
	role, _ = env.profiles.RoleOf(ctx, member)
	if role != constants.RoleManager {
		t.Errorf("expected manager after promotion, got %s", role)
	}

	if err := env.profiles.SetRole(ctx, member, "superuser", manager); err == nil {
		t.Error("expected validation error for unknown role")
	}
}

func TestProfileService_CreateRequiresManager(t *testing.T) {
	env := newTestEnv(t)
	manager := seedProfile(t, env.db, "Alice Manager", constants.RoleManager)
	member := seedProfile(t, env.db, "Bob Member", constants.RoleTeamMember)

	ctx := context.Background()

	_, err := env.profiles.Create(ctx, CreateProfileInput{
		FullName: "New Hire", Email: "new.hire@example.com",
	}, member)
	if !errors.Is(err, apperrors.ErrNotAllowed) {
		t.Errorf("expected ErrNotAllowed, got %v", err)
	}

	profile, err := env.profiles.Create(ctx, CreateProfileInput{
		FullName: "New Hire", Email: "New.Hire@Example.com",
	}, manager)
	if err != nil {
		t.Fatalf("manager provisioning failed: %v", err)
	}
	if profile.Email != "new.hire@example.com" {
		t.Errorf("email must be normalized, got %q", profile.Email)
	}
	if profile.Role != constants.RoleTeamMember {
		t.Errorf("new profiles default to team_member, got %s", profile.Role)
	}
}
