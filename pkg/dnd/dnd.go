// Package dnd turns a drag gesture into a single reschedule or unschedule
// call. The dragged id and hover target live only in the Controller and are
// never persisted.
package dnd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/timeutil"
)

var (
	// ErrNoDrag is returned by Drop when nothing is being dragged.
	ErrNoDrag = errors.New("dnd: no drag in progress")

	errEmptyPayload = errors.New("dnd: empty payload")
)

// TargetKind says what a task is dropped on.
type TargetKind string

const (
	// Cell is a calendar cell: a day, optionally with a time slot.
	Cell TargetKind = "cell"
	// Sidebar is the unscheduled-tasks list.
	Sidebar TargetKind = "sidebar"
)

// Target is a drop target. Slot is set only by views with time slots.
type Target struct {
	Kind TargetKind `json:"kind" validate:"oneof=cell sidebar"`
	Date string     `json:"date,omitempty"`
	Slot *int       `json:"slot,omitempty"`
}

// CellTarget is a day cell without a slot (month view).
func CellTarget(date string) Target {
	return Target{Kind: Cell, Date: date}
}

// SlotTarget is a day cell at slot (day and week views).
func SlotTarget(date string, slot int) Target {
	return Target{Kind: Cell, Date: date, Slot: &slot}
}

// SidebarTarget is the unscheduled list.
func SidebarTarget() Target {
	return Target{Kind: Sidebar}
}

// Equal compares targets by value.
func (t Target) Equal(o Target) bool {
	if t.Kind != o.Kind || t.Date != o.Date {
		return false
	}
	if (t.Slot == nil) != (o.Slot == nil) {
		return false
	}
	return t.Slot == nil || *t.Slot == *o.Slot
}

// Validate checks a target received from outside the process.
func (t Target) Validate() error {
	switch t.Kind {
	case Sidebar:
		return nil
	case Cell:
		if _, err := timeutil.ParseDate(t.Date, nil); err != nil {
			return fmt.Errorf("dnd: %w: target date must be YYYY-MM-DD, got %q", entity.ErrValidation, t.Date)
		}
		if t.Slot != nil && (*t.Slot < 0 || *t.Slot >= calendar.SlotsPerDay) {
			return fmt.Errorf("dnd: %w: slot %d out of range", entity.ErrValidation, *t.Slot)
		}
		return nil
	}
	return fmt.Errorf("dnd: %w: unknown target kind %q", entity.ErrValidation, t.Kind)
}

func (t Target) String() string {
	switch {
	case t.Kind == Sidebar:
		return "unscheduled"
	case t.Slot != nil:
		return t.Date + " " + calendar.SlotTime(*t.Slot)
	default:
		return t.Date
	}
}

// Mutator is the part of the entity store a drop needs.
type Mutator interface {
	RescheduleTask(ctx context.Context, id, date string, clock *string) (entity.Task, error)
	UnscheduleTask(ctx context.Context, id string) (entity.Task, error)
}

// Apply performs the mutation a drop of id on target implies.
func Apply(ctx context.Context, m Mutator, id string, target Target) (entity.Task, error) {
	if err := target.Validate(); err != nil {
		return entity.Task{}, err
	}
	if target.Kind == Sidebar {
		return m.UnscheduleTask(ctx, id)
	}
	if target.Slot == nil {
		return m.RescheduleTask(ctx, id, target.Date, nil)
	}
	clock := calendar.SlotTime(*target.Slot)
	return m.RescheduleTask(ctx, id, target.Date, &clock)
}

// Controller tracks one drag at a time.
type Controller struct {
	Store Mutator

	mu       sync.Mutex
	dragging string
	hover    *Target
}

// New returns a Controller that drops into m.
func New(m Mutator) *Controller {
	return &Controller{Store: m}
}

// Start begins dragging the task with id, replacing any earlier drag.
func (c *Controller) Start(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = id
	c.hover = nil
}

// Dragging returns the dragged id, if any.
func (c *Controller) Dragging() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging, c.dragging != ""
}

// Hover marks target as the candidate drop target. It is ignored when
// nothing is being dragged.
func (c *Controller) Hover(target Target) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragging == "" {
		return
	}
	t := target
	c.hover = &t
}

// IsCandidate reports whether target is the current hover target.
func (c *Controller) IsCandidate(target Target) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging != "" && c.hover != nil && c.hover.Equal(target)
}

// Drop ends the drag on target and applies the mutation. The drag is
// cleared even when the mutation fails.
func (c *Controller) Drop(ctx context.Context, target Target) (entity.Task, error) {
	c.mu.Lock()
	id := c.dragging
	c.dragging, c.hover = "", nil
	c.mu.Unlock()
	if id == "" {
		return entity.Task{}, ErrNoDrag
	}
	return Apply(ctx, c.Store, id, target)
}

// Cancel abandons the drag.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging, c.hover = "", nil
}

// DecodePayload reads a task id out of a drag payload, which carries the
// id as plain text.
func DecodePayload(payload string) (string, error) {
	id := strings.TrimSpace(payload)
	if id == "" {
		return "", errEmptyPayload
	}
	return id, nil
}

// ParseTarget reads a target written as "sidebar", "YYYY-MM-DD" or
// "YYYY-MM-DD@HH:MM". Times snap down to their slot.
func ParseTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, string(Sidebar)) || strings.EqualFold(raw, "unscheduled") {
		return SidebarTarget(), nil
	}
	date, clock, hasClock := strings.Cut(raw, "@")
	t := CellTarget(date)
	if hasClock {
		h, m, err := timeutil.ParseClock(clock)
		if err != nil {
			return Target{}, fmt.Errorf("dnd: %w: time must be HH:MM, got %q", entity.ErrValidation, clock)
		}
		t = SlotTarget(date, calendar.SlotFor(h, m))
	}
	if err := t.Validate(); err != nil {
		return Target{}, err
	}
	return t, nil
}
