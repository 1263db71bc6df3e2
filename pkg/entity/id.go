package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind prefixes identifiers so they are recognizable in logs and payloads.
type Kind string

const (
	KindTask    Kind = "task"
	KindProject Kind = "project"
	KindHabit   Kind = "habit"
)

// NewID returns a fresh identifier such as "task-3f2a...".
func NewID(k Kind) string {
	return string(k) + "-" + uuid.NewString()
}

func stamp(now time.Time) time.Time {
	return now.UTC().Truncate(time.Millisecond)
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
