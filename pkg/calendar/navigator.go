// Package calendar derives the day, week, month and year view models the
// planner renders, and moves the calendar's anchor date between them.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/timeutil"
)

// Granularity is the calendar's zoom level.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// Granularities lists the zoom levels from finest to coarsest.
func Granularities() []Granularity {
	return []Granularity{GranularityDay, GranularityWeek, GranularityMonth, GranularityYear}
}

// ParseGranularity accepts a granularity name or its first letter. Empty
// input means month.
func ParseGranularity(raw string) (Granularity, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return GranularityMonth, nil
	}
	for _, g := range Granularities() {
		if s == string(g) || s == string(g)[:1] {
			return g, nil
		}
	}
	return GranularityMonth, fmt.Errorf("calendar: %w: unknown view %q", entity.ErrValidation, raw)
}

// Direction is a navigation step.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// Navigator is the calendar's position: a granularity and the anchor date
// that decides which dates are visible. It is a value; every transition
// returns the next Navigator.
type Navigator struct {
	Granularity Granularity `json:"granularity"`
	Anchor      time.Time   `json:"anchor"`
}

// NewNavigator anchors g on the day of anchor.
func NewNavigator(g Granularity, anchor time.Time) Navigator {
	return Navigator{Granularity: g, Anchor: timeutil.Midnight(anchor)}
}

// Navigate steps one unit of the current granularity. Months keep the day
// of month where the target month has it and clamp otherwise.
func (n Navigator) Navigate(dir Direction) Navigator {
	return n.Step(int(dir))
}

// Step moves count units; negative counts go backwards.
func (n Navigator) Step(count int) Navigator {
	switch n.Granularity {
	case GranularityDay:
		n.Anchor = n.Anchor.AddDate(0, 0, count)
	case GranularityWeek:
		n.Anchor = n.Anchor.AddDate(0, 0, 7*count)
	case GranularityMonth:
		n.Anchor = timeutil.AddMonths(n.Anchor, count)
	case GranularityYear:
		n.Anchor = timeutil.AddYears(n.Anchor, count)
	}
	return n
}

// Today re-anchors on now, keeping the granularity.
func (n Navigator) Today(now time.Time) Navigator {
	n.Anchor = timeutil.Midnight(now)
	return n
}

// Select changes the granularity and keeps the anchor.
func (n Navigator) Select(g Granularity) Navigator {
	n.Granularity = g
	return n
}

// DrillFromYear opens the month view on the first of month in the year
// currently in view.
func (n Navigator) DrillFromYear(month time.Month) Navigator {
	return Navigator{
		Granularity: GranularityMonth,
		Anchor:      time.Date(n.Anchor.Year(), month, 1, 0, 0, 0, 0, n.Anchor.Location()),
	}
}

// Range returns the first and last visible dates.
func (n Navigator) Range() (time.Time, time.Time) {
	a := timeutil.Midnight(n.Anchor)
	switch n.Granularity {
	case GranularityDay:
		return a, a
	case GranularityWeek:
		return timeutil.StartOfWeek(a), timeutil.EndOfWeek(a)
	case GranularityYear:
		first := time.Date(a.Year(), time.January, 1, 0, 0, 0, 0, a.Location())
		return first, first.AddDate(1, 0, -1)
	default:
		return timeutil.StartOfWeek(timeutil.StartOfMonth(a)), timeutil.EndOfWeek(timeutil.EndOfMonth(a))
	}
}

// Title is the header label for the current view.
func (n Navigator) Title() string {
	a := n.Anchor
	switch n.Granularity {
	case GranularityDay:
		return a.Format("Monday, January 2, 2006")
	case GranularityWeek:
		start, end := n.Range()
		if start.Year() != end.Year() {
			return start.Format("Jan 2, 2006") + " - " + end.Format("Jan 2, 2006")
		}
		if start.Month() != end.Month() {
			return start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
		}
		return start.Format("Jan 2") + " - " + end.Format("2, 2006")
	case GranularityYear:
		return a.Format("2006")
	default:
		return a.Format("January 2006")
	}
}
