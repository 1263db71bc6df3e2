package app

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
)

// Habits returns a copy of every habit across all months.
func (s *Service) Habits() []entity.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneHabits(s.habits)
}

// HabitsForMonth returns the habits scoped to monthKey.
func (s *Service) HabitsForMonth(monthKey string) []entity.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Habit, 0)
	for _, h := range s.habits {
		if h.MonthKey == monthKey {
			out = append(out, cloneHabit(h))
		}
	}
	return out
}

// Habit looks a habit up by id.
func (s *Service) Habit(id string) (entity.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.habitIndex(id)
	if i < 0 {
		return entity.Habit{}, fmt.Errorf("app: habit %q: %w", id, ErrNotFound)
	}
	return cloneHabit(s.habits[i]), nil
}

func (s *Service) habitIndex(id string) int {
	for i := range s.habits {
		if s.habits[i].ID == id {
			return i
		}
	}
	return -1
}

// AddHabit creates a habit for d.MonthKey, defaulting to the current month.
func (s *Service) AddHabit(ctx context.Context, d entity.HabitDraft) (entity.Habit, error) {
	if strings.TrimSpace(d.MonthKey) == "" {
		d.MonthKey = timeutil.MonthKey(s.now())
	}
	h := entity.NewHabit(d, s.now())
	if err := entity.Validate(h); err != nil {
		return entity.Habit{}, fmt.Errorf("app: add habit: %w", err)
	}
	s.mu.Lock()
	s.habits = append(cloneHabits(s.habits), h)
	return cloneHabit(h), s.commit(ctx, store.KeyHabits)
}

// UpdateHabitName renames a habit.
func (s *Service) UpdateHabitName(ctx context.Context, id, name string) (entity.Habit, error) {
	s.mu.Lock()
	i := s.habitIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return entity.Habit{}, fmt.Errorf("app: rename habit %q: %w", id, ErrNotFound)
	}
	next := cloneHabit(s.habits[i])
	next.Name = strings.TrimSpace(name)
	if err := entity.Validate(next); err != nil {
		s.mu.Unlock()
		return entity.Habit{}, fmt.Errorf("app: rename habit: %w", err)
	}
	return next, s.replaceHabit(ctx, i, next)
}

// ToggleHabitCompletion flips the completion for date, which must fall in
// the habit's month.
func (s *Service) ToggleHabitCompletion(ctx context.Context, id, date string) (entity.Habit, error) {
	if _, err := timeutil.ParseDate(date, nil); err != nil {
		return entity.Habit{}, fmt.Errorf("app: %w: date must be YYYY-MM-DD, got %q", ErrValidation, date)
	}
	s.mu.Lock()
	i := s.habitIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return entity.Habit{}, fmt.Errorf("app: toggle habit %q: %w", id, ErrNotFound)
	}
	if !s.habits[i].InMonth(date) {
		s.mu.Unlock()
		return entity.Habit{}, fmt.Errorf("app: %w: %s is outside %s", ErrValidation, date, s.habits[i].MonthKey)
	}
	next := s.habits[i].Toggle(date)
	return cloneHabit(next), s.replaceHabit(ctx, i, next)
}

func (s *Service) replaceHabit(ctx context.Context, i int, h entity.Habit) error {
	habits := make([]entity.Habit, len(s.habits))
	copy(habits, s.habits)
	habits[i] = h
	s.habits = habits
	return s.commit(ctx, store.KeyHabits)
}

// DeleteHabit removes a habit. Unknown ids are a no-op.
func (s *Service) DeleteHabit(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.habitIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	habits := make([]entity.Habit, 0, len(s.habits)-1)
	habits = append(habits, s.habits[:i]...)
	habits = append(habits, s.habits[i+1:]...)
	s.habits = habits
	return s.commit(ctx, store.KeyHabits)
}

// CopyHabitsToMonth creates, in month to, a fresh habit for every habit of
// month from whose name is not already tracked there. Completions are not
// carried over.
func (s *Service) CopyHabitsToMonth(ctx context.Context, from, to string) ([]entity.Habit, error) {
	for _, key := range []string{from, to} {
		if _, err := timeutil.ParseMonthKey(key, nil); err != nil {
			return nil, fmt.Errorf("app: %w: month must be YYYY-MM, got %q", ErrValidation, key)
		}
	}
	if from == to {
		return nil, fmt.Errorf("app: %w: source and target month are both %s", ErrValidation, from)
	}

	s.mu.Lock()
	existing := make(map[string]bool)
	for _, h := range s.habits {
		if h.MonthKey == to {
			existing[strings.ToLower(h.Name)] = true
		}
	}
	created := make([]entity.Habit, 0)
	for _, h := range s.habits {
		if h.MonthKey != from || existing[strings.ToLower(h.Name)] {
			continue
		}
		existing[strings.ToLower(h.Name)] = true
		created = append(created, entity.NewHabit(entity.HabitDraft{Name: h.Name, MonthKey: to}, s.now()))
	}
	if len(created) == 0 {
		s.mu.Unlock()
		return created, nil
	}
	s.habits = append(cloneHabits(s.habits), created...)
	return cloneHabits(created), s.commit(ctx, store.KeyHabits)
}
