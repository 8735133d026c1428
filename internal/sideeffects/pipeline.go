package sideeffects

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"team-task-hub.com/team-task-hub/internal/constants"
	model "team-task-hub.com/team-task-hub/internal/models"
	repository "team-task-hub.com/team-task-hub/internal/repositories"
)

// Event describes one committed mutation. The pipeline owns everything
// derived from it: exactly one activity-log row, plus notifications per
// the assignment and status rules.
type Event struct {
	ActorID    string
	Action     constants.ActionType
	TaskID     *string
	TaskRef    string
	TaskTitle  string
	AssigneeID *string
	Reassigned bool
	OldStatus  constants.TaskStatus
	NewStatus  constants.TaskStatus
	Details    map[string]interface{}
}

// Pipeline runs strictly after the triggering mutation committed and
// never feeds a failure back into the request path: a failed write here
// is a warning, the primary mutation stays committed.
type Pipeline struct {
	queue         chan Event
	wg            sync.WaitGroup
	activities    *repository.ActivityRepository
	notifications *repository.NotificationRepository
}

func New(
	activities *repository.ActivityRepository,
	notifications *repository.NotificationRepository,
	workers int,
	queueSize int,
) *Pipeline {
	p := &Pipeline{
		queue:         make(chan Event, queueSize),
		activities:    activities,
		notifications: notifications,
	}

	for i := 1; i <= workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p
}

// Emit never blocks the caller; when the queue is full the event is
// dropped with a warning.
func (p *Pipeline) Emit(ev Event) {
	select {
	case p.queue <- ev:
	default:
		log.Printf("warning: side-effect queue full, dropping %s event for task %s", ev.Action, ev.TaskRef)
	}
}

func (p *Pipeline) worker(workerID int) {
	defer p.wg.Done()

	for ev := range p.queue {
		p.handle(ev)
	}

	log.Printf("side-effect worker %d stopped", workerID)
}

func (p *Pipeline) handle(ev Event) {
	ctx := context.Background()

	if err := p.appendActivity(ctx, ev); err != nil {
		log.Printf("warning: failed to append activity for %s: %v", ev.Action, err)
	}

	for _, n := range p.deriveNotifications(ev) {
		if err := p.notifications.Create(ctx, n); err != nil {
			log.Printf("warning: failed to create notification for %s: %v", n.UserID, err)
		}
	}
}

func (p *Pipeline) appendActivity(ctx context.Context, ev Event) error {
	var details string
	if len(ev.Details) > 0 {
		b, err := json.Marshal(ev.Details)
		if err != nil {
			return err
		}
		details = string(b)
	}

	entry := &model.ActivityLog{
		ID:         uuid.NewString(),
		UserID:     ev.ActorID,
		ActionType: ev.Action,
		TaskID:     ev.TaskID,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}
	return p.activities.Append(ctx, entry)
}

// Notification rules: a newly assigned task notifies the new assignee;
// a status change notifies the assignee unless the actor is the assignee.
func (p *Pipeline) deriveNotifications(ev Event) []*model.Notification {
	var out []*model.Notification

	if ev.Reassigned && ev.AssigneeID != nil {
		out = append(out, &model.Notification{
			ID:        uuid.NewString(),
			UserID:    *ev.AssigneeID,
			TaskID:    ev.TaskID,
			Title:     "New task assigned",
			Message:   fmt.Sprintf("You have been assigned %s: %s", ev.TaskRef, ev.TaskTitle),
			Type:      constants.NotificationTaskAssigned,
			Read:      false,
			CreatedAt: time.Now().UTC(),
		})
	}

	statusChanged := ev.OldStatus != "" && ev.NewStatus != "" && ev.OldStatus != ev.NewStatus
	if statusChanged && ev.AssigneeID != nil && *ev.AssigneeID != ev.ActorID {
		out = append(out, &model.Notification{
			ID:        uuid.NewString(),
			UserID:    *ev.AssigneeID,
			TaskID:    ev.TaskID,
			Title:     "Task status updated",
			Message:   fmt.Sprintf("%s moved from %s to %s", ev.TaskRef, ev.OldStatus, ev.NewStatus),
			Type:      constants.NotificationStatusChanged,
			Read:      false,
			CreatedAt: time.Now().UTC(),
		})
	}

	return out
}

// Shutdown closes the queue and drains remaining events within the
// deadline.
func (p *Pipeline) Shutdown(ctx context.Context) {
	close(p.queue)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("side-effect pipeline drained")
	case <-ctx.Done():
		log.Println("side-effect pipeline shutdown timed out")
	}
}
