package app

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/timeutil"
)

// TaskFilter narrows the project task list by scheduled date.
type TaskFilter string

const (
	FilterAll    TaskFilter = "all"
	FilterToday  TaskFilter = "today"
	FilterWeek   TaskFilter = "week"
	FilterMonth  TaskFilter = "month"
	FilterNoDate TaskFilter = "no-date"
	// FilterOverdue is only meaningful for the dashboard widget.
	FilterOverdue TaskFilter = "overdue"
)

// ParseTaskFilter accepts the filter names above; empty means all.
func ParseTaskFilter(raw string) (TaskFilter, error) {
	f := TaskFilter(strings.ToLower(strings.TrimSpace(raw)))
	switch f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterToday, FilterWeek, FilterMonth, FilterNoDate, FilterOverdue:
		return f, nil
	}
	return FilterAll, fmt.Errorf("app: %w: unknown filter %q", ErrValidation, raw)
}

// FilterTasks applies a date filter: today, within a week (+7 days, overdue
// included), within a month (+30 days), or unscheduled.
func FilterTasks(tasks []entity.Task, f TaskFilter, now time.Time) []entity.Task {
	today := timeutil.FormatDate(now)
	out := make([]entity.Task, 0, len(tasks))
	for _, t := range tasks {
		keep := true
		switch f {
		case FilterToday:
			keep = t.ScheduledDate == today
		case FilterWeek:
			keep = timeutil.IsDueWithin(t.ScheduledDate, now, 7)
		case FilterMonth:
			keep = timeutil.IsDueWithin(t.ScheduledDate, now, 30)
		case FilterNoDate:
			keep = t.ScheduledDate == ""
		case FilterOverdue:
			keep = timeutil.IsOverdue(t.ScheduledDate, now)
		}
		if keep {
			out = append(out, t)
		}
	}
	return out
}

// FilterTasks filters the store's tasks; see the package function.
func (s *Service) FilterTasks(f TaskFilter) []entity.Task {
	return FilterTasks(s.Tasks(), f, s.now())
}

// DefaultWidgetLimit caps the dashboard task list.
const DefaultWidgetLimit = 5

// Widget lists open tasks for the dashboard: completed tasks are skipped and
// at most limit tasks are returned (limit <= 0 means DefaultWidgetLimit).
func (s *Service) Widget(f TaskFilter, limit int) []entity.Task {
	if limit <= 0 {
		limit = DefaultWidgetLimit
	}
	open := make([]entity.Task, 0)
	for _, t := range s.Tasks() {
		if !t.Completed {
			open = append(open, t)
		}
	}
	if f == FilterMonth || f == FilterNoDate {
		f = FilterAll
	}
	out := FilterTasks(open, f, s.now())
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TodaysSchedule lists today's tasks that have a time, earliest first.
func (s *Service) TodaysSchedule() []entity.Task {
	today := timeutil.FormatDate(s.now())
	out := make([]entity.Task, 0)
	for _, t := range s.Tasks() {
		if t.ScheduledDate == today && t.ScheduledTime != "" {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return clockMinutes(out[i]) < clockMinutes(out[j])
	})
	return out
}

func clockMinutes(t entity.Task) int {
	h, m, ok := t.Clock()
	if !ok {
		return 24 * 60
	}
	return h*60 + m
}

// AllProjects selects every project in Unscheduled.
const AllProjects = "all"

// Unscheduled lists open tasks with no date, optionally for one project.
func (s *Service) Unscheduled(projectID string) []entity.Task {
	out := make([]entity.Task, 0)
	for _, t := range s.Tasks() {
		if t.ScheduledDate != "" || t.Completed {
			continue
		}
		if projectID != "" && projectID != AllProjects && t.ProjectID != projectID {
			continue
		}
		out = append(out, t)
	}
	return out
}

// ProjectStat summarizes a project's tasks.
type ProjectStat struct {
	Project   entity.Project `json:"project"`
	Total     int            `json:"total"`
	Completed int            `json:"completed"`
	Percent   int            `json:"percent"`
}

// ProjectStats reports task counts and completion per project, in project
// order.
func (s *Service) ProjectStats() []ProjectStat {
	snap := s.Snapshot()
	stats := make([]ProjectStat, len(snap.Projects))
	index := make(map[string]int, len(snap.Projects))
	for i, p := range snap.Projects {
		stats[i].Project = p
		index[p.ID] = i
	}
	for _, t := range snap.Tasks {
		i, ok := index[t.ProjectID]
		if !ok {
			continue
		}
		stats[i].Total++
		if t.Completed {
			stats[i].Completed++
		}
	}
	for i := range stats {
		if stats[i].Total > 0 {
			stats[i].Percent = (stats[i].Completed*100 + stats[i].Total/2) / stats[i].Total
		}
	}
	return stats
}

// ColorFor resolves the display color for a task's project.
func (s *Service) ColorFor(projectID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entity.ColorFor(s.projects, projectID)
}
