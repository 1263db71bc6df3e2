// Package entity defines the planner's tasks, projects and habits together
// with their drafts, patches and validation rules.
package entity

import (
	"fmt"
	"strings"
)

// Level grades a task's priority (importance) or urgency (time pressure).
type Level string

const (
	Low    Level = "low"
	Medium Level = "medium"
	High   Level = "high"
)

// AllLevels lists levels from least to most pressing.
func AllLevels() []Level {
	return []Level{Low, Medium, High}
}

// ParseLevel converts user input to a Level; empty input means Medium.
func ParseLevel(raw string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(raw)))
	if l == "" {
		return Medium, nil
	}
	for _, candidate := range AllLevels() {
		if candidate == l {
			return candidate, nil
		}
	}
	return Medium, fmt.Errorf("%w: unknown level %q", ErrValidation, raw)
}

// Rank orders levels; unknown levels rank with Medium.
func (l Level) Rank() int {
	switch l {
	case Low:
		return 0
	case High:
		return 2
	default:
		return 1
	}
}

func (l Level) String() string {
	return string(l)
}

// Set implements pflag.Value so levels can be bound directly to flags.
func (l *Level) Set(raw string) error {
	v, err := ParseLevel(raw)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Type implements pflag.Value.
func (l *Level) Type() string {
	return "level"
}
