package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	config "team-task-hub.com/team-task-hub/internal/configs"
	"team-task-hub.com/team-task-hub/internal/constants"
	apperrors "team-task-hub.com/team-task-hub/internal/errors"
	"team-task-hub.com/team-task-hub/internal/identifier"
	model "team-task-hub.com/team-task-hub/internal/models"
	repository "team-task-hub.com/team-task-hub/internal/repositories"
	"team-task-hub.com/team-task-hub/internal/sideeffects"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

type testEnv struct {
	db            *gorm.DB
	tasks         *TaskService
	comments      *CommentService
	notifications *NotificationService
	profiles      *ProfileService
	nomenclature  *NomenclatureService
	analytics     *AnalyticsService
	pipeline      *sideeffects.Pipeline

	taskRepo         *repository.TaskRepository
	notificationRepo *repository.NotificationRepository
	activityRepo     *repository.ActivityRepository
}

func newTestEnv(t *testing.T) *testEnv {
	db := setupTestDB(t)

	taskRepo := repository.NewTaskRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	nomenclatureRepo := repository.NewNomenclatureRepository(db)

	pipeline := sideeffects.New(activityRepo, notificationRepo, 1, 64)
	allocator := identifier.NewDatabaseAllocator(nomenclatureRepo)

	return &testEnv{
		db:               db,
		tasks:            NewTaskService(taskRepo, profileRepo, allocator, pipeline),
		comments:         NewCommentService(commentRepo, taskRepo),
		notifications:    NewNotificationService(notificationRepo),
		profiles:         NewProfileService(profileRepo, pipeline),
		nomenclature:     NewNomenclatureService(nomenclatureRepo, profileRepo, pipeline),
		analytics:        NewAnalyticsService(taskRepo, profileRepo),
		pipeline:         pipeline,
		taskRepo:         taskRepo,
		notificationRepo: notificationRepo,
		activityRepo:     activityRepo,
	}
}

// drain flushes all pending side effects so their rows can be asserted.
// The pipeline cannot be reused afterwards.
func (e *testEnv) drain() {
	e.pipeline.Shutdown(context.Background())
}

func seedProfile(t *testing.T, db *gorm.DB, name string, role constants.Role) string {
	now := time.Now().UTC()
	profile := &model.Profile{
		ID:        uuid.NewString(),
		FullName:  name,
		Email:     fmt.Sprintf("%s@example.com", uuid.NewString()),
		Timezone:  "UTC",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}

	if role == constants.RoleManager {
		ur := &model.UserRole{
			ID:        uuid.NewString(),
			UserID:    profile.ID,
			Role:      role,
			CreatedAt: now,
		}
		if err := db.Create(ur).Error; err != nil {
			t.Fatalf("failed to seed role: %v", err)
		}
	}

	return profile.ID
}

func dueTomorrow() time.Time {
	return time.Now().UTC().AddDate(0, 0, 1).Truncate(24 * time.Hour)
}

func TestTaskService_CreateAndReadBack(t *testing.T) {
	env := newTestEnv(t)
	manager := seedProfile(t, env.db, "Alice Manager", constants.RoleManager)
	member := seedProfile(t, env.db, "Bob Member", constants.RoleTeamMember)

	ctx := context.Background()
	due := dueTomorrow()

	created, err := env.tasks.CreateTask(ctx, CreateTaskInput{
		Title:      "Ship the release",
		AssigneeID: &member,
		Priority:   constants.PriorityCritical,
		DueDate:    due,
		Tags:       []string{"release", "urgent"},
	}, manager)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	fetched, err := env.tasks.GetTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("failed to read task back: %v", err)
	}

	if fetched.Priority != constants.PriorityCritical {
		t.Errorf("expected priority critical, got %s", fetched.Priority)
	}
	if fetched.Status != constants.StatusNotStarted {
		t.Errorf("expected default status not_started, got %s", fetched.Status)
	}
	if fetched.AssigneeID == nil || *fetched.AssigneeID != member {
		t.Errorf("assignee not preserved")
	}
	if fetched.AssignerID != manager {
		t.Errorf("expected assigner %s, got %s", manager, fetched.AssignerID)
	}
	if !fetched.DueDate.Equal(due) {
		t.Errorf("expected due date %v, got %v", due, fetched.DueDate)
	}
	if len(fetched.Tags) != 2 {
		t.Errorf("expected 2 tags, got %d", len(fetched.Tags))
	}
	if fetched.CreatedAt.After(fetched.UpdatedAt) {
		t.Errorf("created_at must not be after updated_at")
	}
	if fetched.TaskID == "" {
		t.Error("expected a minted task identifier")
	}
}

func TestTaskService_CreateRequiresManager(t *testing.T) {
	env := newTestEnv(t)
	member := seedProfile(t, env.db, "Bob Member", constants.RoleTeamMember)

	_, err := env.tasks.CreateTask(context.Background(), CreateTaskInput{
		Title:   "Not allowed",
		DueDate: dueTomorrow(),
	}, member)

	if !errors.Is(err, apperrors.ErrNotAllowed) {
		t.Errorf("expected ErrNotAllowed, got %v", err)
	}
}

func TestTaskService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	manager := seedProfile(t, env.db, "Alice Manager", constants.RoleManager)

	_, err := env.tasks.CreateTask(context.Background(), CreateTaskInput{
		Title:    "ab",
		Priority: "impossible",
	}, manager)

	var valErr *apperrors.Validation
	if !errors.As(err, &valErr) {
		t.Fatalf("expected Validation error, got %v", err)
	}
	for _, field := range []string{"title", "due_date", "priority"} {
		if _, ok := valErr.Fields[field]; !ok {
			t.Errorf("expected validation message for %s", field)
		}
	}

	tasks, _ := env.tasks.ListTasks(context.Background(), repository.TaskFilter{})
	if len(tasks) != 0 {
		t.Errorf("validation failure must not create a task, found %d", len(tasks))
	}
}

func TestTaskService_ConcurrentCreatesUniqueIdentifiers(t *testing.T) {
	env := newTestEnv(t)
	manager := seedProfile(t, env.db, "Alice Manager", constants.RoleManager)

	const workers = 5
	const perWorker = 4

	var wg sync.WaitGroup
	wg.Add(workers)
	errs := make(chan error, workers*perWorker)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, err := env.tasks.CreateTask(context.Background(), CreateTaskInput{
					Title:   "Concurrent task",
					DueDate: dueTomorrow(),
				}, manager)
				if err != nil {
					errs <- err
				}
			}
		}()
	}

	wg.Wait()
	close(errs)

	// Contention may abort some creations; duplicates are never allowed.
	for err := range errs {
		if !errors.Is(err, apperrors.ErrCounterConflict) {
			t.Errorf("unexpected creation error: %v", err)
		}
	}

	tasks, err := env.tasks.ListTasks(context.Background(), repository.TaskFilter{})
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	seen := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		if seen[task.TaskID] {
			t.Errorf("duplicate task identifier %s", task.TaskID)
		}
		seen[task.TaskID] = true
	}
}

func TestTaskService_CompletedAtLifecycle(t *testing.T) {
	env := newTestEnv(t)
	manager := seedProfile(t, env.db, "Alice Manager", constants.RoleManager)

	ctx := context.Background()
	task, err := env.tasks.CreateTask(ctx, CreateTaskInput{
		Title:   "Finish the report",
		DueDate: dueTomorrow(),
	}, manager)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	completed := constants.StatusCompleted
	updated, err := env.tasks.UpdateTask(ctx, task.ID, UpdateTaskInput{Status: &completed}, manager)
	if err != nil {
		t.Fatalf("failed to complete task: %v", err)
	}
	if updated.CompletedAt == nil {
		t.Fatal("completed task must have completed_at set")
	}

	inProgress := constants.StatusInProgress
	reopened, err := env.tasks.UpdateTask(ctx, task.ID, UpdateTaskInput{Status: &inProgress}, manager)
	if err != nil {
		t.Fatalf("failed to reopen task: %v", err)
	}
	if reopened.CompletedAt != nil {
		t.Error("reopened task must have completed_at cleared")
	}
}

func TestTaskService_ConcurrentDisjointFieldUpdates(t *testing.T) {
	env := newTestEnv(t)
	manager := seedProfile(t, env.db, "Alice Manager", constants.RoleManager)

	ctx := context.Background()
	task, err := env.tasks.CreateTask(ctx, CreateTaskInput{
		Title:   "Original title",
		DueDate: dueTomorrow(),
	}, manager)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	// Updates write only the provided fields, so two concurrent patches
	// touching disjoint fields must both be observable afterwards, no
	// matter which commits last.
	newTitle := "Renamed concurrently"
	inProgress := constants.StatusInProgress

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := env.tasks.UpdateTask(ctx, task.ID, UpdateTaskInput{Title: &newTitle}, manager)
		errs <- err
	}()
	go func() {
		defer wg.Done()
		_, err := env.tasks.UpdateTask(ctx, task.ID, UpdateTaskInput{Status: &inProgress}, manager)
		errs <- err
	}()
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent update failed: %v", err)
		}
	}

	final, err := env.tasks.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to read task back: %v", err)
	}
	if final.Title != newTitle {
		t.Errorf("title update was lost, got %q", final.Title)
	}
	if final.Status != inProgress {
		t.Errorf("status update was lost, got %s", final.Status)
	}
}

func TestTaskService_TeamMemberPermissions(t *testing.T) {
	env := newTestEnv(t)
	manager := seedProfile(t, env.db, "Alice Manager", constants.RoleManager)
	member := seedProfile(t, env.db, "Bob Member", constants.RoleTeamMember)
	other := seedProfile(t, env.db, "Carol Member", constants.RoleTeamMember)

	ctx := context.Background()
	mine, _ := env.tasks.CreateTask(ctx, CreateTaskInput{
		Title:      "Assigned to Bob",
		AssigneeID: &member,
		DueDate:    dueTomorrow(),
	}, manager)
	unassigned, _ := env.tasks.CreateTask(ctx, CreateTaskInput{
		Title:   "Nobody owns this",
		DueDate: dueTomorrow(),
	}, manager)

	inProgress := constants.StatusInProgress

	// Own-task status change is allowed.
	if _, err := env.tasks.UpdateTask(ctx, mine.ID, UpdateTaskInput{Status: &inProgress}, member); err != nil {
		t.Errorf("assignee status change should succeed: %v", err)
	}

	// Another member may not touch it, whatever the field.
	if _, err := env.tasks.UpdateTask(ctx, mine.ID, UpdateTaskInput{Status: &inProgress}, other); !errors.Is(err, apperrors.ErrNotAllowed) {
		t.Errorf("expected ErrNotAllowed for non-assignee status change, got %v", err)
	}
	newTitle := "Renamed by member"
	if _, err := env.tasks.UpdateTask(ctx, mine.ID, UpdateTaskInput{Title: &newTitle}, member); !errors.Is(err, apperrors.ErrNotAllowed) {
		t.Errorf("expected ErrNotAllowed for member field edit, got %v", err)
	}

	// Unassigned tasks grant no member rights.
	if _, err := env.tasks.UpdateTask(ctx, unassigned.ID, UpdateTaskInput{Status: &inProgress}, member); !errors.Is(err, apperrors.ErrNotAllowed) {
		t.Errorf("expected ErrNotAllowed on unassigned task, got %v", err)
	}

	// Members may not delete.
	if err := env.tasks.DeleteTask(ctx, mine.ID, member); !errors.Is(err, apperrors.ErrNotAllowed) {
		t.Errorf("expected ErrNotAllowed for member delete, got %v", err)
	}
}

func TestTaskService_DeleteIdempotent(t *testing.T) {
	env := newTestEnv(t)
	manager := seedProfile(t, env.db, "Alice Manager", constants.RoleManager)

	ctx := context.Background()
	task, _ := env.tasks.CreateTask(ctx, CreateTaskInput{
		Title:   "Short lived",
		DueDate: dueTomorrow(),
	}, manager)

	if err := env.tasks.DeleteTask(ctx, task.ID, manager); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := env.tasks.DeleteTask(ctx, task.ID, manager); err != nil {
		t.Errorf("second delete must be a no-op success, got %v", err)
	}

	if _, err := env.tasks.GetTask(ctx, task.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound after delete, got %v", err)
	}
}

func TestSideEffects_ActivityAndNotifications(t *testing.T) {
	env := newTestEnv(t)
	manager := seedProfile(t, env.db, "Alice Manager", constants.RoleManager)
	member := seedProfile(t, env.db, "Bob Member", constants.RoleTeamMember)

	ctx := context.Background()
	task, err := env.tasks.CreateTask(ctx, CreateTaskInput{
		Title:      "Review the proposal",
		AssigneeID: &member,
		DueDate:    dueTomorrow(),
	}, manager)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	inProgress := constants.StatusInProgress
	if _, err := env.tasks.UpdateTask(ctx, task.ID, UpdateTaskInput{Status: &inProgress}, manager); err != nil {
		t.Fatalf("failed to update status: %v", err)
	}

	env.drain()

	entries, err := env.activityRepo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("failed to list activity: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 activity entries, got %d", len(entries))
	}
	actions := map[constants.ActionType]bool{}
	for _, e := range entries {
		actions[e.ActionType] = true
	}
	if !actions[constants.ActionTaskCreated] || !actions[constants.ActionTaskStatusChanged] {
		t.Errorf("expected task_created and task_status_changed entries, got %v", actions)
	}

	notifications, err := env.notifications.ListForUser(ctx, member)
	if err != nil {
		t.Fatalf("failed to list notifications: %v", err)
	}
	// One for the assignment at creation, one for the manager's status change.
	if len(notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifications))
	}
	for _, n := range notifications {
		if n.Read {
			t.Error("notifications must be created unread")
		}
	}
}

func TestSideEffects_NoSelfNotificationOnStatusChange(t *testing.T) {
	env := newTestEnv(t)
	manager := seedProfile(t, env.db, "Alice Manager", constants.RoleManager)
	member := seedProfile(t, env.db, "Bob Member", constants.RoleTeamMember)

	ctx := context.Background()
	task, _ := env.tasks.CreateTask(ctx, CreateTaskInput{
		Title:      "Bob's own task",
		AssigneeID: &member,
		DueDate:    dueTomorrow(),
	}, manager)

	inProgress := constants.StatusInProgress
	if _, err := env.tasks.UpdateTask(ctx, task.ID, UpdateTaskInput{Status: &inProgress}, member); err != nil {
		t.Fatalf("failed to update status: %v", err)
	}

	env.drain()

	notifications, _ := env.notifications.ListForUser(ctx, member)
	// Only the assignment notification; the self-made status change adds none.
	if len(notifications) != 1 {
		t.Errorf("expected 1 notification, got %d", len(notifications))
	}
}

func TestNotificationService_MarkAllReadIdempotent(t *testing.T) {
	env := newTestEnv(t)
	manager := seedProfile(t, env.db, "Alice Manager", constants.RoleManager)
	member := seedProfile(t, env.db, "Bob Member", constants.RoleTeamMember)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := env.tasks.CreateTask(ctx, CreateTaskInput{
			Title:      "Assigned task",
			AssigneeID: &member,
			DueDate:    dueTomorrow(),
		}, manager)
		if err != nil {
			t.Fatalf("failed to create task: %v", err)
		}
	}
	env.drain()

	for call := 0; call < 2; call++ {
		if err := env.notifications.MarkAllRead(ctx, member); err != nil {
			t.Fatalf("mark-all-read call %d failed: %v", call+1, err)
		}
		notifications, _ := env.notifications.ListForUser(ctx, member)
		for _, n := range notifications {
			if !n.Read {
				t.Errorf("notification %s still unread after call %d", n.ID, call+1)
			}
		}
	}
}

func TestNotificationService_OwnerOnlyMarkRead(t *testing.T) {
	env := newTestEnv(t)
	manager := seedProfile(t, env.db, "Alice Manager", constants.RoleManager)
	member := seedProfile(t, env.db, "Bob Member", constants.RoleTeamMember)
	other := seedProfile(t, env.db, "Carol Member", constants.RoleTeamMember)

	ctx := context.Background()
	_, err := env.tasks.CreateTask(ctx, CreateTaskInput{
		Title:      "Assigned task",
		AssigneeID: &member,
		DueDate:    dueTomorrow(),
	}, manager)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	env.drain()

	notifications, _ := env.notifications.ListForUser(ctx, member)
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}

	if err := env.notifications.MarkRead(ctx, notifications[0].ID, other); !errors.Is(err, apperrors.ErrNotAllowed) {
		t.Errorf("expected ErrNotAllowed for foreign mark-read, got %v", err)
	}
	if err := env.notifications.MarkRead(ctx, notifications[0].ID, member); err != nil {
		t.Errorf("owner mark-read failed: %v", err)
	}
	// Marking again is fine.
	if err := env.notifications.MarkRead(ctx, notifications[0].ID, member); err != nil {
		t.Errorf("repeated mark-read failed: %v", err)
	}
}
