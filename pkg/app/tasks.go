package app

import (
	"context"
	"fmt"

	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
)

// DefaultProjectName names the project created when a task arrives before
// any project exists.
const DefaultProjectName = "Inbox"

// Tasks returns a copy of every task.
func (s *Service) Tasks() []entity.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.tasks)
}

// Task looks a task up by id.
func (s *Service) Task(id string) (entity.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.taskIndex(id)
	if i < 0 {
		return entity.Task{}, fmt.Errorf("app: task %q: %w", id, ErrNotFound)
	}
	return s.tasks[i], nil
}

func (s *Service) taskIndex(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// AddTask creates a task from draft. Without a project id the first project
// is used, creating DefaultProjectName when there is none.
func (s *Service) AddTask(ctx context.Context, d entity.TaskDraft) (entity.Task, error) {
	s.mu.Lock()
	touched := []store.Key{store.KeyTasks}
	var inbox *entity.Project
	if d.ProjectID == "" {
		if len(s.projects) == 0 {
			p := entity.NewProject(entity.ProjectDraft{Name: DefaultProjectName}, s.now())
			inbox = &p
			d.ProjectID = p.ID
		} else {
			d.ProjectID = s.projects[0].ID
		}
	} else if s.projectIndex(d.ProjectID) < 0 {
		s.mu.Unlock()
		return entity.Task{}, fmt.Errorf("app: %w: unknown project %q", ErrValidation, d.ProjectID)
	}

	t := entity.NewTask(d, s.now())
	if err := entity.Validate(t); err != nil {
		s.mu.Unlock()
		return entity.Task{}, fmt.Errorf("app: add task: %w", err)
	}
	if inbox != nil {
		s.projects = append(cloneProjects(s.projects), *inbox)
		touched = append(touched, store.KeyProjects)
	}
	s.tasks = append(cloneTasks(s.tasks), t)
	return t, s.commit(ctx, touched...)
}

// UpdateTask merges patch into the task with id.
func (s *Service) UpdateTask(ctx context.Context, id string, patch entity.TaskPatch) (entity.Task, error) {
	s.mu.Lock()
	i := s.taskIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return entity.Task{}, fmt.Errorf("app: update task %q: %w", id, ErrNotFound)
	}
	if patch.ProjectID != nil && s.projectIndex(*patch.ProjectID) < 0 {
		s.mu.Unlock()
		return entity.Task{}, fmt.Errorf("app: %w: unknown project %q", ErrValidation, *patch.ProjectID)
	}
	next := patch.Apply(s.tasks[i])
	if err := entity.Validate(next); err != nil {
		s.mu.Unlock()
		return entity.Task{}, fmt.Errorf("app: update task: %w", err)
	}
	return next, s.replaceTask(ctx, i, next)
}

// replaceTask swaps in t at index i and commits. Callers hold s.mu.
func (s *Service) replaceTask(ctx context.Context, i int, t entity.Task) error {
	tasks := cloneTasks(s.tasks)
	tasks[i] = t
	s.tasks = tasks
	return s.commit(ctx, store.KeyTasks)
}

// DeleteTask removes the task with id. Deleting an unknown id is a no-op.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.taskIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	tasks := make([]entity.Task, 0, len(s.tasks)-1)
	tasks = append(tasks, s.tasks[:i]...)
	tasks = append(tasks, s.tasks[i+1:]...)
	s.tasks = tasks
	return s.commit(ctx, store.KeyTasks)
}

// ToggleTaskCompletion flips the completed flag.
func (s *Service) ToggleTaskCompletion(ctx context.Context, id string) (entity.Task, error) {
	s.mu.Lock()
	i := s.taskIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return entity.Task{}, fmt.Errorf("app: toggle task %q: %w", id, ErrNotFound)
	}
	next := s.tasks[i]
	next.Completed = !next.Completed
	return next, s.replaceTask(ctx, i, next)
}

// RescheduleTask moves a task to date. A nil clock keeps the task's current
// time, so a move between days leaves the time of day alone.
func (s *Service) RescheduleTask(ctx context.Context, id, date string, clock *string) (entity.Task, error) {
	d, err := timeutil.ParseDate(date, nil)
	if err != nil {
		return entity.Task{}, fmt.Errorf("app: %w: scheduledDate must be YYYY-MM-DD, got %q", ErrValidation, date)
	}
	date = timeutil.FormatDate(d)
	if clock != nil && *clock != "" {
		h, m, err := timeutil.ParseClock(*clock)
		if err != nil {
			return entity.Task{}, fmt.Errorf("app: %w: scheduledTime must be HH:MM, got %q", ErrValidation, *clock)
		}
		canonical := timeutil.Clock(h, m)
		clock = &canonical
	}

	s.mu.Lock()
	i := s.taskIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return entity.Task{}, fmt.Errorf("app: reschedule task %q: %w", id, ErrNotFound)
	}
	next := s.tasks[i]
	next.ScheduledDate = date
	if clock != nil {
		next.ScheduledTime = *clock
	}
	return next, s.replaceTask(ctx, i, next)
}

// UnscheduleTask clears both the date and the time.
func (s *Service) UnscheduleTask(ctx context.Context, id string) (entity.Task, error) {
	s.mu.Lock()
	i := s.taskIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return entity.Task{}, fmt.Errorf("app: unschedule task %q: %w", id, ErrNotFound)
	}
	next := s.tasks[i]
	next.ScheduledDate = ""
	next.ScheduledTime = ""
	return next, s.replaceTask(ctx, i, next)
}
