package commands

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entity"
)

// isolate points the CLI at a fresh disk store and keeps it away from any
// real config.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("PLANNER_CONFIG_PATH", dir)
	t.Setenv("PLANNER_STORE_DRIVER", "disk")
	t.Setenv("PLANNER_STORE_PATH", filepath.Join(dir, "planner.db"))
	t.Chdir(dir)
}

func run(t *testing.T, args ...string) {
	t.Helper()
	cmd := New()
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("planner %v: %v", args, err)
	}
}

func reopen(t *testing.T) *app.Service {
	t.Helper()
	svc, _, err := openService(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return svc
}

func onlyTask(t *testing.T, svc *app.Service) entity.Task {
	t.Helper()
	tasks := svc.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("tasks = %d, want 1", len(tasks))
	}
	return tasks[0]
}

func TestTaskLifecycle(t *testing.T) {
	isolate(t)

	run(t, "project", "add", "Home", "--color=#22c55e")
	projects := reopen(t).Projects()
	if len(projects) != 1 || projects[0].Name != "Home" || projects[0].Color != "#22c55e" {
		t.Fatalf("projects = %+v", projects)
	}
	pid := projects[0].ID

	run(t, "task", "add", "Pay", "rent", "-p", pid, "--on=2024-3-20", "--at=09:30", "-e", "1h", "--priority=high")
	task := onlyTask(t, reopen(t))
	if task.Name != "Pay rent" || task.ScheduledDate != "2024-03-20" || task.ScheduledTime != "09:30" {
		t.Fatalf("added task = %+v", task)
	}
	if task.EstimatedMinutes != 60 || task.Priority != entity.High || task.Urgency != entity.Medium {
		t.Fatalf("added task = %+v", task)
	}

	run(t, "cal", "drop", task.ID, "2024-03-21")
	task = onlyTask(t, reopen(t))
	if task.ScheduledDate != "2024-03-21" || task.ScheduledTime != "09:30" {
		t.Fatalf("dropped on a day: %s %s", task.ScheduledDate, task.ScheduledTime)
	}

	run(t, "task", "edit", task.ID, "--name=Pay the rent")
	task = onlyTask(t, reopen(t))
	if task.Name != "Pay the rent" || task.ScheduledDate != "2024-03-21" || task.Priority != entity.High {
		t.Fatalf("edit touched more than the name: %+v", task)
	}

	run(t, "task", "schedule", task.ID, "--on=2024-3-22", "--at=")
	task = onlyTask(t, reopen(t))
	if task.ScheduledDate != "2024-03-22" || task.ScheduledTime != "" {
		t.Fatalf("schedule with an empty --at: %s %q", task.ScheduledDate, task.ScheduledTime)
	}

	run(t, "task", "done", task.ID)
	if task = onlyTask(t, reopen(t)); !task.Completed {
		t.Fatalf("expected the task to be completed")
	}

	run(t, "project", "rm", pid, "--yes")
	svc := reopen(t)
	if len(svc.Tasks()) != 0 || len(svc.Projects()) != 0 {
		t.Fatalf("expected the project and its task to be gone: %d tasks %d projects", len(svc.Tasks()), len(svc.Projects()))
	}
}

func TestTaskAddNeedsName(t *testing.T) {
	isolate(t)

	cmd := New()
	cmd.SetArgs([]string{"task", "add"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error without a task name")
	}
}

func TestHabitCommands(t *testing.T) {
	isolate(t)

	run(t, "habit", "add", "Read", "--month=2024-03")
	habits := reopen(t).HabitsForMonth("2024-03")
	if len(habits) != 1 || habits[0].Name != "Read" {
		t.Fatalf("habits = %+v", habits)
	}
	id := habits[0].ID

	run(t, "habit", "toggle", id, "--on=2024-3-2")
	if h := reopen(t).HabitsForMonth("2024-03")[0]; !h.Done("2024-03-02") {
		t.Fatalf("expected March 2nd to be done: %+v", h)
	}

	run(t, "habit", "rename", id, "Read", "books")
	run(t, "habit", "copy", "--month=2024-03", "--to=2024-04")
	april := reopen(t).HabitsForMonth("2024-04")
	if len(april) != 1 || april[0].Name != "Read books" || april[0].Done("2024-03-02") {
		t.Fatalf("copied habits = %+v", april)
	}
}

func TestParseMonth(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    time.Month
		wantErr bool
	}{
		"number":  {in: "7", want: time.July},
		"name":    {in: "December", want: time.December},
		"abbrev":  {in: "sep", want: time.September},
		"zero":    {in: "0", wantErr: true},
		"short":   {in: "ju", wantErr: true},
		"unknown": {in: "smarch", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseMonth(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestEstimateMinutes(t *testing.T) {
	for in, want := range map[string]int{"": 0, "45": 45, "1h30m": 90, "2h": 120} {
		got, err := estimateMinutes(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want {
			t.Errorf("%q = %d, want %d", in, got, want)
		}
	}
	if _, err := estimateMinutes("soon"); err == nil {
		t.Errorf("expected an error for %q", "soon")
	}
}
