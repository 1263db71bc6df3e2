package entity

import (
	"time"

	"tableflip.dev/planner/pkg/timeutil"
)

const (
	// DefaultEstimate is the duration given to tasks created without one.
	DefaultEstimate = 30
)

// Task is a unit of work that belongs to exactly one project and may be
// scheduled onto a date and optionally a time of day.
type Task struct {
	ID               string    `json:"id" validate:"required"`
	Name             string    `json:"name" validate:"notblank"`
	Notes            string    `json:"notes"`
	Priority         Level     `json:"priority" validate:"oneof=low medium high"`
	Urgency          Level     `json:"urgency" validate:"oneof=low medium high"`
	EstimatedMinutes int       `json:"estimatedMinutes" validate:"gt=0"`
	Completed        bool      `json:"completed"`
	ProjectID        string    `json:"projectId" validate:"required"`
	ScheduledDate    string    `json:"scheduledDate,omitempty" validate:"omitempty,isodate"`
	ScheduledTime    string    `json:"scheduledTime,omitempty" validate:"omitempty,clock"`
	CreatedAt        time.Time `json:"createdAt"`
}

// TaskDraft carries the caller supplied fields of a new task.
type TaskDraft struct {
	Name             string
	Notes            string
	Priority         Level
	Urgency          Level
	EstimatedMinutes int
	ProjectID        string
	ScheduledDate    string
	ScheduledTime    string
}

// NewTask builds a task from a draft, filling defaults, a fresh id and the
// creation stamp. It does not validate.
func NewTask(d TaskDraft, now time.Time) Task {
	t := Task{
		ID:               NewID(KindTask),
		Name:             trim(d.Name),
		Notes:            d.Notes,
		Priority:         d.Priority,
		Urgency:          d.Urgency,
		EstimatedMinutes: d.EstimatedMinutes,
		ProjectID:        d.ProjectID,
		ScheduledDate:    trim(d.ScheduledDate),
		ScheduledTime:    trim(d.ScheduledTime),
		CreatedAt:        stamp(now),
	}
	if t.Priority == "" {
		t.Priority = Medium
	}
	if t.Urgency == "" {
		t.Urgency = Medium
	}
	if t.EstimatedMinutes == 0 {
		t.EstimatedMinutes = DefaultEstimate
	}
	return t.Normalize()
}

// Normalize drops a scheduled time that has no date to sit on and writes a
// valid time as HH:MM. Invalid values are left for Validate to reject.
func (t Task) Normalize() Task {
	if t.ScheduledDate == "" {
		t.ScheduledTime = ""
	}
	if t.ScheduledTime != "" {
		if h, m, err := timeutil.ParseClock(t.ScheduledTime); err == nil {
			t.ScheduledTime = timeutil.Clock(h, m)
		}
	}
	return t
}

// Scheduled reports whether the task has a date.
func (t Task) Scheduled() bool {
	return t.ScheduledDate != ""
}

// Estimate is EstimatedMinutes as a duration.
func (t Task) Estimate() time.Duration {
	return time.Duration(t.EstimatedMinutes) * time.Minute
}

// Date parses the scheduled date in loc.
func (t Task) Date(loc *time.Location) (time.Time, bool) {
	if t.ScheduledDate == "" {
		return time.Time{}, false
	}
	d, err := timeutil.ParseDate(t.ScheduledDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Clock parses the scheduled time; ok is false when unset or malformed.
func (t Task) Clock() (hour, minute int, ok bool) {
	if t.ScheduledTime == "" {
		return 0, 0, false
	}
	h, m, err := timeutil.ParseClock(t.ScheduledTime)
	if err != nil {
		return 0, 0, false
	}
	return h, m, true
}

// TaskPatch names only the task fields being changed. A pointer to an empty
// ScheduledDate clears the schedule, and with it the time.
type TaskPatch struct {
	Name             *string `json:"name,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	Priority         *Level  `json:"priority,omitempty"`
	Urgency          *Level  `json:"urgency,omitempty"`
	EstimatedMinutes *int    `json:"estimatedMinutes,omitempty"`
	Completed        *bool   `json:"completed,omitempty"`
	ProjectID        *string `json:"projectId,omitempty"`
	ScheduledDate    *string `json:"scheduledDate,omitempty"`
	ScheduledTime    *string `json:"scheduledTime,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p == TaskPatch{}
}

// Apply merges the patch into t and returns the result; t is not modified.
func (p TaskPatch) Apply(t Task) Task {
	if p.Name != nil {
		t.Name = trim(*p.Name)
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Urgency != nil {
		t.Urgency = *p.Urgency
	}
	if p.EstimatedMinutes != nil {
		t.EstimatedMinutes = *p.EstimatedMinutes
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	if p.ScheduledDate != nil {
		t.ScheduledDate = trim(*p.ScheduledDate)
	}
	if p.ScheduledTime != nil {
		t.ScheduledTime = trim(*p.ScheduledTime)
	}
	return t.Normalize()
}
