package teaui

import (
	"context"
	"testing"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/dnd"
	"tableflip.dev/planner/pkg/entity"
)

func addTask(t *testing.T, svc *app.Service, name, date, clock string) entity.Task {
	t.Helper()
	task, err := svc.AddTask(context.Background(), entity.TaskDraft{
		Name:             name,
		EstimatedMinutes: 60,
		ScheduledDate:    date,
		ScheduledTime:    clock,
	})
	if err != nil {
		t.Fatalf("add %s: %v", name, err)
	}
	return task
}

func TestDragBetweenMonthCellsKeepsTime(t *testing.T) {
	m, svc := newTestModel(t)
	task := addTask(t, svc, "Standup", "2024-03-14", "09:30")
	m.refresh()

	m = press(t, m, "space")
	if id, ok := m.drag.Dragging(); !ok || id != task.ID {
		t.Fatalf("expected %s to be picked up, got %q %v", task.ID, id, ok)
	}

	m = press(t, m, "right")
	if !m.drag.IsCandidate(dnd.CellTarget("2024-03-15")) {
		t.Fatalf("expected the 15th to be the drop candidate")
	}

	m = press(t, m, "enter")
	got, err := svc.Task(task.ID)
	if err != nil {
		t.Fatalf("task: %v", err)
	}
	if got.ScheduledDate != "2024-03-15" || got.ScheduledTime != "09:30" {
		t.Fatalf("dropped task = %s %s", got.ScheduledDate, got.ScheduledTime)
	}
	if _, ok := m.drag.Dragging(); ok {
		t.Fatalf("expected the drag to end on drop")
	}
}

func TestDragToSlotSetsTime(t *testing.T) {
	m, svc := newTestModel(t)
	task := addTask(t, svc, "Write", "2024-03-14", "")
	m.refresh()

	// Untimed tasks sit in the 09:00 slot, where the day cursor starts.
	m = press(t, m, "d", "space", "down", "down", "enter")

	got, _ := svc.Task(task.ID)
	if got.ScheduledDate != "2024-03-14" || got.ScheduledTime != "10:00" {
		t.Fatalf("dropped task = %s %s, want 2024-03-14 10:00", got.ScheduledDate, got.ScheduledTime)
	}
}

func TestDragThroughSidebar(t *testing.T) {
	m, svc := newTestModel(t)
	task := addTask(t, svc, "Taxes", "2024-03-14", "")
	m.refresh()

	m = press(t, m, "space", "u")
	got, _ := svc.Task(task.ID)
	if got.ScheduledDate != "" || got.ScheduledTime != "" {
		t.Fatalf("expected task to be unscheduled, got %s %s", got.ScheduledDate, got.ScheduledTime)
	}
	if n := len(m.sidebar.Items()); n != 1 {
		t.Fatalf("sidebar items = %d, want 1", n)
	}

	// Pick it up from the sidebar and drop it on the 20th.
	m = press(t, m, "tab", "space", "tab", "down", "left", "enter")
	got, _ = svc.Task(task.ID)
	if got.ScheduledDate != "2024-03-20" {
		t.Fatalf("scheduled date = %q, want 2024-03-20", got.ScheduledDate)
	}
	if n := len(m.sidebar.Items()); n != 0 {
		t.Fatalf("sidebar items = %d, want 0", n)
	}
}

func TestEscCancelsDrag(t *testing.T) {
	m, svc := newTestModel(t)
	task := addTask(t, svc, "Gym", "2024-03-14", "18:00")
	m.refresh()

	m = press(t, m, "space", "right", "esc", "enter")
	if _, ok := m.drag.Dragging(); ok {
		t.Fatalf("expected no drag after esc")
	}
	got, _ := svc.Task(task.ID)
	if got.ScheduledDate != "2024-03-14" {
		t.Fatalf("cancelled drag moved the task to %s", got.ScheduledDate)
	}
}

func TestPickUpEmptyCell(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "space")
	if _, ok := m.drag.Dragging(); ok {
		t.Fatalf("expected nothing to pick up")
	}
	if m.status != "Nothing to pick up here" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestChangedMsgRefreshesSidebar(t *testing.T) {
	m, svc := newTestModel(t)
	addTask(t, svc, "Someday", "", "")

	next, _ := m.Update(changedMsg{})
	m = next.(Model)
	if n := len(m.sidebar.Items()); n != 1 {
		t.Fatalf("sidebar items = %d, want 1", n)
	}
}
