// Package mcp provides the Model Context Protocol server integration for the
// planner.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/habits"
	"tableflip.dev/planner/pkg/timeutil"
)

// Service adapts the planner store to the shapes the MCP tools exchange.
type Service struct {
	App      *app.Service
	MonthCap int
}

// NewService wraps svc.
func NewService(svc *app.Service, monthCap int) *Service {
	return &Service{App: svc, MonthCap: monthCap}
}

func (s *Service) now() time.Time {
	if s.App.Now != nil {
		return s.App.Now()
	}
	return time.Now()
}

// AddTaskOptions captures the parameters used to create a task. Levels are
// passed as text so tool callers can send any casing; empty means medium.
type AddTaskOptions struct {
	Name             string
	Notes            string
	ProjectID        string
	Priority         string
	Urgency          string
	EstimatedMinutes int
	Date             string
	Time             string
}

// AddTask creates a task.
func (s *Service) AddTask(ctx context.Context, opts AddTaskOptions) (entity.Task, error) {
	priority, err := entity.ParseLevel(opts.Priority)
	if err != nil {
		return entity.Task{}, err
	}
	urgency, err := entity.ParseLevel(opts.Urgency)
	if err != nil {
		return entity.Task{}, err
	}
	return s.App.AddTask(ctx, entity.TaskDraft{
		Name:             opts.Name,
		Notes:            opts.Notes,
		ProjectID:        opts.ProjectID,
		Priority:         priority,
		Urgency:          urgency,
		EstimatedMinutes: opts.EstimatedMinutes,
		ScheduledDate:    opts.Date,
		ScheduledTime:    opts.Time,
	})
}

// ListTasks applies filter, then narrows to projectID when set. Completed
// tasks are dropped unless includeCompleted.
func (s *Service) ListTasks(filter, projectID string, includeCompleted bool) ([]entity.Task, error) {
	f, err := app.ParseTaskFilter(filter)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Task, 0)
	for _, t := range s.App.FilterTasks(f) {
		if projectID != "" && t.ProjectID != projectID {
			continue
		}
		if t.Completed && !includeCompleted {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// CompleteTask marks a task completed. Completing a completed task is a
// no-op that still returns it.
func (s *Service) CompleteTask(ctx context.Context, id string) (entity.Task, error) {
	done := true
	return s.App.UpdateTask(ctx, id, entity.TaskPatch{Completed: &done})
}

// RescheduleTask moves a task to date; an empty clock keeps its time.
func (s *Service) RescheduleTask(ctx context.Context, id, date, clock string) (entity.Task, error) {
	var at *string
	if strings.TrimSpace(clock) != "" {
		at = &clock
	}
	return s.App.RescheduleTask(ctx, id, date, at)
}

// AddProject creates a project; an empty color takes the default.
func (s *Service) AddProject(ctx context.Context, name, color, description string) (entity.Project, error) {
	return s.App.AddProject(ctx, entity.ProjectDraft{Name: name, Color: color, Description: description})
}

// HabitMonth resolves month, defaulting to the current one.
func (s *Service) HabitMonth(month string) (string, error) {
	if strings.TrimSpace(month) == "" {
		return timeutil.MonthKey(s.now()), nil
	}
	if _, err := timeutil.ParseMonthKey(month, nil); err != nil {
		return "", fmt.Errorf("mcp: %w: month must be YYYY-MM, got %q", app.ErrValidation, month)
	}
	return month, nil
}

// ToggleHabit flips a habit's completion for date, today when empty.
func (s *Service) ToggleHabit(ctx context.Context, id, date string) (entity.Habit, error) {
	if strings.TrimSpace(date) == "" {
		date = timeutil.FormatDate(s.now())
	}
	return s.App.ToggleHabitCompletion(ctx, id, date)
}

// HabitProgress summarizes month.
func (s *Service) HabitProgress(month string) (habits.Summary, error) {
	key, err := s.HabitMonth(month)
	if err != nil {
		return habits.Summary{}, err
	}
	return habits.Summarize(s.App.Habits(), key, s.now()), nil
}

// CalendarView derives the view of granularity around on, today when empty.
func (s *Service) CalendarView(granularity, on string) (calendar.View, error) {
	g, err := calendar.ParseGranularity(granularity)
	if err != nil {
		return calendar.View{}, err
	}
	anchor := s.now()
	if strings.TrimSpace(on) != "" {
		anchor, err = timeutil.ParseDate(on, anchor.Location())
		if err != nil {
			return calendar.View{}, fmt.Errorf("mcp: %w: date must be YYYY-MM-DD, got %q", app.ErrValidation, on)
		}
	}
	return calendar.Derive(calendar.NewNavigator(g, anchor), s.App.Tasks(), calendar.Options{
		Now:      s.now(),
		MonthCap: s.MonthCap,
	}), nil
}
