package app

import (
	"sort"
	"strings"
	"time"

	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/timeutil"
)

// ReportSection groups completed tasks by project.
type ReportSection struct {
	Project entity.Project `json:"project"`
	Tasks   []entity.Task  `json:"tasks"`
}

// ReportResult is a completed-tasks report for a window of scheduled dates.
type ReportResult struct {
	Since    string          `json:"since"`
	Until    string          `json:"until"`
	Sections []ReportSection `json:"sections"`
	Total    int             `json:"total"`
}

// Report returns completed tasks scheduled between since and until
// (inclusive), grouped by project and ordered by project name. Tasks are not
// stamped on completion, so the scheduled date stands in for when the work
// happened.
func (s *Service) Report(since, until time.Time) ReportResult {
	if since.After(until) {
		since, until = until, since
	}
	from, to := timeutil.FormatDate(since), timeutil.FormatDate(until)
	snap := s.Snapshot()

	grouped := make(map[string][]entity.Task)
	total := 0
	for _, t := range snap.Tasks {
		if !t.Completed || t.ScheduledDate == "" {
			continue
		}
		if t.ScheduledDate < from || t.ScheduledDate > to {
			continue
		}
		grouped[t.ProjectID] = append(grouped[t.ProjectID], t)
		total++
	}

	result := ReportResult{Since: from, Until: to, Sections: make([]ReportSection, 0, len(grouped)), Total: total}
	for _, p := range snap.Projects {
		tasks, ok := grouped[p.ID]
		if !ok {
			continue
		}
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].ScheduledDate < tasks[j].ScheduledDate
		})
		result.Sections = append(result.Sections, ReportSection{Project: p, Tasks: tasks})
	}
	sort.SliceStable(result.Sections, func(i, j int) bool {
		return strings.ToLower(result.Sections[i].Project.Name) < strings.ToLower(result.Sections[j].Project.Name)
	})
	return result
}
