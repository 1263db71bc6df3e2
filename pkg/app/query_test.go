package app

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/entity"
)

func names(tasks []entity.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Name
	}
	return out
}

func equalNames(got []entity.Task, want ...string) bool {
	n := names(got)
	if len(n) != len(want) {
		return false
	}
	for i := range n {
		if n[i] != want[i] {
			return false
		}
	}
	return true
}

// fixedNow is 2024-03-14.
func seedQueries(t *testing.T) *Service {
	t.Helper()
	svc, _ := newTestService(t)
	p := mustProject(t, svc, "Alpha")
	for _, d := range []entity.TaskDraft{
		{Name: "yesterday", ScheduledDate: "2024-03-13"},
		{Name: "today-late", ScheduledDate: "2024-03-14", ScheduledTime: "15:00"},
		{Name: "today-early", ScheduledDate: "2024-03-14", ScheduledTime: "08:30"},
		{Name: "today-untimed", ScheduledDate: "2024-03-14"},
		{Name: "next-week", ScheduledDate: "2024-03-21"},
		{Name: "in-three-weeks", ScheduledDate: "2024-04-04"},
		{Name: "far", ScheduledDate: "2024-06-01"},
		{Name: "loose"},
	} {
		d.ProjectID = p.ID
		mustTask(t, svc, d)
	}
	return svc
}

func TestFilterTasks(t *testing.T) {
	svc := seedQueries(t)
	cases := map[TaskFilter][]string{
		FilterAll:     {"yesterday", "today-late", "today-early", "today-untimed", "next-week", "in-three-weeks", "far", "loose"},
		FilterToday:   {"today-late", "today-early", "today-untimed"},
		FilterWeek:    {"yesterday", "today-late", "today-early", "today-untimed", "next-week"},
		FilterMonth:   {"yesterday", "today-late", "today-early", "today-untimed", "next-week", "in-three-weeks"},
		FilterNoDate:  {"loose"},
		FilterOverdue: {"yesterday"},
	}
	for f, want := range cases {
		if got := svc.FilterTasks(f); !equalNames(got, want...) {
			t.Errorf("%s: got %v, want %v", f, names(got), want)
		}
	}
}

func TestParseTaskFilter(t *testing.T) {
	if f, err := ParseTaskFilter(""); err != nil || f != FilterAll {
		t.Fatalf("empty: %v %v", f, err)
	}
	if f, err := ParseTaskFilter(" Week "); err != nil || f != FilterWeek {
		t.Fatalf("week: %v %v", f, err)
	}
	if _, err := ParseTaskFilter("someday"); err == nil {
		t.Fatal("expected error")
	}
}

func TestWidgetSkipsCompletedAndCaps(t *testing.T) {
	svc := seedQueries(t)
	ctx := context.Background()
	early := svc.FilterTasks(FilterToday)[1]
	if _, err := svc.ToggleTaskCompletion(ctx, early.ID); err != nil {
		t.Fatal(err)
	}
	if got := svc.Widget(FilterToday, 0); !equalNames(got, "today-late", "today-untimed") {
		t.Fatalf("today widget: %v", names(got))
	}
	if got := svc.Widget(FilterAll, 0); len(got) != DefaultWidgetLimit {
		t.Fatalf("expected widget capped at %d, got %d", DefaultWidgetLimit, len(got))
	}
	if got := svc.Widget(FilterAll, 2); len(got) != 2 {
		t.Fatalf("expected 2, got %d", len(got))
	}
	if got := svc.Widget(FilterOverdue, 0); !equalNames(got, "yesterday") {
		t.Fatalf("overdue widget: %v", names(got))
	}
}

func TestTodaysScheduleSortsByTime(t *testing.T) {
	svc := seedQueries(t)
	if got := svc.TodaysSchedule(); !equalNames(got, "today-early", "today-late") {
		t.Fatalf("got %v", names(got))
	}
}

func TestUnscheduled(t *testing.T) {
	ctx := context.Background()
	svc := seedQueries(t)
	beta := mustProject(t, svc, "Beta")
	done := mustTask(t, svc, entity.TaskDraft{Name: "done-loose", ProjectID: beta.ID})
	mustTask(t, svc, entity.TaskDraft{Name: "beta-loose", ProjectID: beta.ID})
	if _, err := svc.ToggleTaskCompletion(ctx, done.ID); err != nil {
		t.Fatal(err)
	}
	if got := svc.Unscheduled(AllProjects); !equalNames(got, "loose", "beta-loose") {
		t.Fatalf("all: %v", names(got))
	}
	if got := svc.Unscheduled(beta.ID); !equalNames(got, "beta-loose") {
		t.Fatalf("beta: %v", names(got))
	}
}

func TestProjectStats(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	p := mustProject(t, svc, "Alpha")
	mustProject(t, svc, "Empty")
	var ids []string
	for _, n := range []string{"a", "b", "c"} {
		ids = append(ids, mustTask(t, svc, entity.TaskDraft{Name: n, ProjectID: p.ID}).ID)
	}
	if _, err := svc.ToggleTaskCompletion(ctx, ids[0]); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ToggleTaskCompletion(ctx, ids[1]); err != nil {
		t.Fatal(err)
	}
	stats := svc.ProjectStats()
	if len(stats) != 2 {
		t.Fatalf("expected 2 stats, got %d", len(stats))
	}
	if s := stats[0]; s.Total != 3 || s.Completed != 2 || s.Percent != 67 {
		t.Fatalf("unexpected stat %+v", s)
	}
	if s := stats[1]; s.Total != 0 || s.Percent != 0 {
		t.Fatalf("empty project stat %+v", s)
	}
}

func TestColorFor(t *testing.T) {
	svc, _ := newTestService(t)
	p, err := svc.AddProject(context.Background(), entity.ProjectDraft{Name: "Red", Color: "#EF4444"})
	if err != nil {
		t.Fatal(err)
	}
	if got := svc.ColorFor(p.ID); got != "#EF4444" {
		t.Fatalf("got %s", got)
	}
	if got := svc.ColorFor("project-gone"); got != entity.FallbackColor {
		t.Fatalf("got %s", got)
	}
}

func TestRollOverdue(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService(t)
	p := mustProject(t, svc, "Alpha")
	old := mustTask(t, svc, entity.TaskDraft{Name: "old", ProjectID: p.ID, ScheduledDate: "2024-03-01", ScheduledTime: "07:15"})
	done := mustTask(t, svc, entity.TaskDraft{Name: "done", ProjectID: p.ID, ScheduledDate: "2024-03-02"})
	mustTask(t, svc, entity.TaskDraft{Name: "future", ProjectID: p.ID, ScheduledDate: "2024-03-20"})
	if _, err := svc.ToggleTaskCompletion(ctx, done.ID); err != nil {
		t.Fatal(err)
	}
	if got := svc.OverdueTasks(); !equalNames(got, "old") {
		t.Fatalf("overdue: %v", names(got))
	}

	before := mem.Writes("productivity-tasks")
	moved, err := svc.RollOverdue(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(moved) != 1 || moved[0].ID != old.ID {
		t.Fatalf("moved %v", names(moved))
	}
	got, _ := svc.Task(old.ID)
	if got.ScheduledDate != "2024-03-14" || got.ScheduledTime != "07:15" {
		t.Fatalf("expected moved to today keeping time, got %s %s", got.ScheduledDate, got.ScheduledTime)
	}
	if mem.Writes("productivity-tasks") != before+1 {
		t.Fatal("rollover should save once")
	}
	if moved, _ := svc.RollOverdue(ctx); len(moved) != 0 {
		t.Fatal("second rollover should be a no-op")
	}
}

func TestReport(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	zeta := mustProject(t, svc, "Zeta")
	alpha := mustProject(t, svc, "alpha")
	for _, d := range []entity.TaskDraft{
		{Name: "z1", ProjectID: zeta.ID, ScheduledDate: "2024-03-05"},
		{Name: "a2", ProjectID: alpha.ID, ScheduledDate: "2024-03-09"},
		{Name: "a1", ProjectID: alpha.ID, ScheduledDate: "2024-03-02"},
		{Name: "outside", ProjectID: alpha.ID, ScheduledDate: "2024-02-20"},
	} {
		task := mustTask(t, svc, d)
		if _, err := svc.ToggleTaskCompletion(ctx, task.ID); err != nil {
			t.Fatal(err)
		}
	}
	mustTask(t, svc, entity.TaskDraft{Name: "open", ProjectID: alpha.ID, ScheduledDate: "2024-03-03"})

	until := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	r := svc.Report(fixedNow, until)
	if r.Since != "2024-03-01" || r.Until != "2024-03-14" || r.Total != 3 {
		t.Fatalf("unexpected report header %+v", r)
	}
	if len(r.Sections) != 2 || r.Sections[0].Project.ID != alpha.ID {
		t.Fatalf("expected alpha first, got %+v", r.Sections)
	}
	if !equalNames(r.Sections[0].Tasks, "a1", "a2") {
		t.Fatalf("alpha tasks %v", names(r.Sections[0].Tasks))
	}
}
