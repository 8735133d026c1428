package services

import (
	"context"
	"math"
	"time"

	"team-task-hub.com/team-task-hub/internal/constants"
	model "team-task-hub.com/team-task-hub/internal/models"
	repository "team-task-hub.com/team-task-hub/internal/repositories"
)

// AnalyticsService recomputes every aggregate from the current task and
// profile collections on each call; nothing derived is ever persisted.
type AnalyticsService struct {
	tasks    *repository.TaskRepository
	profiles *repository.ProfileRepository
}

func NewAnalyticsService(tasks *repository.TaskRepository, profiles *repository.ProfileRepository) *AnalyticsService {
	return &AnalyticsService{
		tasks:    tasks,
		profiles: profiles,
	}
}

type TaskStats struct {
	Total        int `json:"total"`
	AssignedToMe int `json:"assigned_to_me"`
	Completed    int `json:"completed"`
	InProgress   int `json:"in_progress"`
	NotStarted   int `json:"not_started"`
	Overdue      int `json:"overdue"`
}

type TeamPerformance struct {
	UserID                string  `json:"user_id"`
	UserName              string  `json:"user_name"`
	TasksCompleted        int     `json:"tasks_completed"`
	TasksInProgress       int     `json:"tasks_in_progress"`
	AverageCompletionDays float64 `json:"average_completion_days"`
}

type DailyTaskMetrics struct {
	Date      string `json:"date"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

// TaskStats classifies against a single "now" so one call never splits
// a task across overdue buckets.
func (s *AnalyticsService) TaskStats(ctx context.Context, userID string) (*TaskStats, error) {
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stats := &TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		if userID != "" && t.AssigneeID != nil && *t.AssigneeID == userID {
			stats.AssignedToMe++
		}
		switch t.Status {
		case constants.StatusCompleted:
			stats.Completed++
		case constants.StatusInProgress:
			stats.InProgress++
		case constants.StatusNotStarted:
			stats.NotStarted++
		}
		if t.DueDate.Before(now) && t.Status != constants.StatusCompleted {
			stats.Overdue++
		}
	}
	return stats, nil
}

func (s *AnalyticsService) TeamPerformance(ctx context.Context) ([]TeamPerformance, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}

	byAssignee := make(map[string][]model.Task)
	for _, t := range tasks {
		if t.AssigneeID != nil {
			byAssignee[*t.AssigneeID] = append(byAssignee[*t.AssigneeID], t)
		}
	}

	out := make([]TeamPerformance, 0, len(profiles))
	for _, p := range profiles {
		perf := TeamPerformance{UserID: p.ID, UserName: p.FullName}

		var totalDays float64
		var samples int
		for _, t := range byAssignee[p.ID] {
			switch t.Status {
			case constants.StatusCompleted:
				perf.TasksCompleted++
				if t.CompletedAt != nil && !t.CreatedAt.IsZero() {
					totalDays += t.CompletedAt.Sub(t.CreatedAt).Hours() / 24
					samples++
				}
			case constants.StatusInProgress:
				perf.TasksInProgress++
			}
		}
		if samples > 0 {
			perf.AverageCompletionDays = math.Round(totalDays/float64(samples)*10) / 10
		}

		out = append(out, perf)
	}
	return out, nil
}

// maxMetricsMonths caps the daily-metrics window. One row is produced
// per calendar day, so an unbounded window would let a single request
// materialize an arbitrarily large response.
const maxMetricsMonths = 12

// DailyTaskMetrics buckets creations and completions per calendar day in
// [startOfMonth(now) - (monthsBack-1) months, now]. Day boundaries are
// midnight-to-midnight in the reporting location; a task created and
// completed the same day counts once in each series.
func (s *AnalyticsService) DailyTaskMetrics(ctx context.Context, monthsBack int) ([]DailyTaskMetrics, error) {
	if monthsBack < 1 {
		monthsBack = 1
	}
	if monthsBack > maxMetricsMonths {
		monthsBack = maxMetricsMonths
	}

	tasks, err := s.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	loc := now.Location()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).
		AddDate(0, -(monthsBack - 1), 0)

	const dayFormat = "2006-01-02"
	created := make(map[string]int)
	completed := make(map[string]int)
	for _, t := range tasks {
		created[t.CreatedAt.In(loc).Format(dayFormat)]++
		if t.CompletedAt != nil {
			completed[t.CompletedAt.In(loc).Format(dayFormat)]++
		}
	}

	var out []DailyTaskMetrics
	for day := start; !day.After(now); day = day.AddDate(0, 0, 1) {
		key := day.Format(dayFormat)
		out = append(out, DailyTaskMetrics{
			Date:      key,
			Created:   created[key],
			Completed: completed[key],
		})
	}
	return out, nil
}
