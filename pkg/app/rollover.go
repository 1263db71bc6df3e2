package app

import (
	"context"
	"sort"

	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
)

// OverdueTasks lists open tasks scheduled before today, oldest first.
func (s *Service) OverdueTasks() []entity.Task {
	now := s.now()
	out := make([]entity.Task, 0)
	for _, t := range s.Tasks() {
		if !t.Completed && timeutil.IsOverdue(t.ScheduledDate, now) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ScheduledDate != out[j].ScheduledDate {
			return out[i].ScheduledDate < out[j].ScheduledDate
		}
		return clockMinutes(out[i]) < clockMinutes(out[j])
	})
	return out
}

// RollOverdue moves every overdue open task onto today, keeping its time of
// day. The tasks collection is saved once. It returns the moved tasks.
func (s *Service) RollOverdue(ctx context.Context) ([]entity.Task, error) {
	now := s.now()
	today := timeutil.FormatDate(now)

	s.mu.Lock()
	tasks := cloneTasks(s.tasks)
	moved := make([]entity.Task, 0)
	for i, t := range tasks {
		if t.Completed || !timeutil.IsOverdue(t.ScheduledDate, now) {
			continue
		}
		t.ScheduledDate = today
		tasks[i] = t
		moved = append(moved, t)
	}
	if len(moved) == 0 {
		s.mu.Unlock()
		return moved, nil
	}
	s.tasks = tasks
	return moved, s.commit(ctx, store.KeyTasks)
}
