package entity

import (
	"strings"
	"time"
)

// Habit is a named routine tracked for a single calendar month. Carrying a
// habit into another month creates a new record.
type Habit struct {
	ID          string          `json:"id" validate:"required"`
	Name        string          `json:"name" validate:"notblank"`
	MonthKey    string          `json:"monthKey" validate:"monthkey"`
	Completions map[string]bool `json:"completions"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// HabitDraft carries the caller supplied fields of a new habit.
type HabitDraft struct {
	Name     string
	MonthKey string
}

// NewHabit builds a habit with no completions.
func NewHabit(d HabitDraft, now time.Time) Habit {
	return Habit{
		ID:          NewID(KindHabit),
		Name:        trim(d.Name),
		MonthKey:    trim(d.MonthKey),
		Completions: map[string]bool{},
		CreatedAt:   stamp(now),
	}
}

// Done reports whether the habit was completed on date.
func (h Habit) Done(date string) bool {
	return h.Completions[date]
}

// InMonth reports whether date (YYYY-MM-DD) belongs to the habit's month.
func (h Habit) InMonth(date string) bool {
	return h.MonthKey != "" && strings.HasPrefix(date, h.MonthKey+"-")
}

// Toggle returns a copy of h with date flipped. The receiver's map is not
// shared with the result.
func (h Habit) Toggle(date string) Habit {
	next := make(map[string]bool, len(h.Completions)+1)
	for k, v := range h.Completions {
		next[k] = v
	}
	next[date] = !next[date]
	h.Completions = next
	return h
}

// CompletedCount counts true completions inside the habit's month.
func (h Habit) CompletedCount() int {
	n := 0
	for date, done := range h.Completions {
		if done && h.InMonth(date) {
			n++
		}
	}
	return n
}
