package sideeffects

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	config "team-task-hub.com/team-task-hub/internal/configs"
	"team-task-hub.com/team-task-hub/internal/constants"
	repository "team-task-hub.com/team-task-hub/internal/repositories"
)

func setupRepos(t *testing.T) (*gorm.DB, *repository.ActivityRepository, *repository.NotificationRepository) {
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

	return db, repository.NewActivityRepository(db), repository.NewNotificationRepository(db)
}

func sampleEvent(assignee string) Event {
	taskID := "task-1"
	return Event{
		ActorID:    "actor-1",
		Action:     constants.ActionTaskAssigned,
		TaskID:     &taskID,
		TaskRef:    "TSK-001",
		TaskTitle:  "Sample task",
		AssigneeID: &assignee,
		Reassigned: true,
		Details:    map[string]interface{}{"assignee_id": assignee},
	}
}

func TestPipeline_WritesActivityAndNotification(t *testing.T) {
	_, activities, notifications := setupRepos(t)
	p := New(activities, notifications, 1, 8)

	p.Emit(sampleEvent("assignee-1"))
	p.Shutdown(context.Background())

	ctx := context.Background()
	entries, err := activities.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("failed to list activity: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 activity entry, got %d", len(entries))
	}

	notes, err := notifications.ListByUser(ctx, "assignee-1")
	if err != nil {
		t.Fatalf("failed to list notifications: %v", err)
	}
	if len(notes) != 1 || notes[0].Type != constants.NotificationTaskAssigned {
		t.Fatalf("expected 1 assignment notification, got %+v", notes)
	}
}

func TestPipeline_WriteFailureIsSwallowed(t *testing.T) {
	db, activities, notifications := setupRepos(t)

	// Killing the handle makes every pipeline write fail. Failures must
	// surface as warnings only: the worker keeps running and drains.
	sqlDB, _ := db.DB()
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("failed to close database: %v", err)
	}

	p := New(activities, notifications, 1, 8)
	p.Emit(sampleEvent("assignee-1"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p.Shutdown(ctx)

	if ctx.Err() != nil {
		t.Fatal("pipeline did not drain after a write failure")
	}
}

func TestPipeline_EmitDropsWhenQueueFull(t *testing.T) {
	_, activities, notifications := setupRepos(t)

	// No workers: the first event fills the queue and stays there.
	p := New(activities, notifications, 0, 1)
	p.Emit(sampleEvent("assignee-1"))

	done := make(chan struct{})
	go func() {
		p.Emit(sampleEvent("assignee-2"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full queue")
	}

	if got := len(p.queue); got != 1 {
		t.Errorf("expected the overflow event to be dropped, queue holds %d", got)
	}
}

func TestPipeline_NotificationRules(t *testing.T) {
	_, activities, notifications := setupRepos(t)
	p := New(activities, notifications, 0, 1)

	assignee := "assignee-1"

	tests := []struct {
		name string
		ev   Event
		want int
	}{
		{
			name: "assignment notifies the new assignee",
			ev:   Event{ActorID: "actor-1", Reassigned: true, AssigneeID: &assignee},
			want: 1,
		},
		{
			name: "status change notifies the assignee",
			ev: Event{
				ActorID:    "actor-1",
				AssigneeID: &assignee,
				OldStatus:  constants.StatusNotStarted,
				NewStatus:  constants.StatusInProgress,
			},
			want: 1,
		},
		{
			name: "self status change stays silent",
			ev: Event{
				ActorID:    assignee,
				AssigneeID: &assignee,
				OldStatus:  constants.StatusNotStarted,
				NewStatus:  constants.StatusInProgress,
			},
			want: 0,
		},
		{
			name: "reassignment with status change yields both",
			ev: Event{
				ActorID:    "actor-1",
				Reassigned: true,
				AssigneeID: &assignee,
				OldStatus:  constants.StatusNotStarted,
				NewStatus:  constants.StatusInProgress,
			},
			want: 2,
		},
		{
			name: "unassigned task notifies nobody",
			ev: Event{
				ActorID:   "actor-1",
				OldStatus: constants.StatusNotStarted,
				NewStatus: constants.StatusInProgress,
			},
			want: 0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := len(p.deriveNotifications(tc.ev)); got != tc.want {
				t.Errorf("expected %d notifications, got %d", tc.want, got)
			}
		})
	}
}
