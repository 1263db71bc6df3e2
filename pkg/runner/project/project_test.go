package project

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/store"
)

func setup(t *testing.T) (*app.Service, *printers.PrettyPrint, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	svc, err := app.Open(context.Background(), store.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	svc.Strict = true
	var buf bytes.Buffer
	return svc, &printers.PrettyPrint{Out: &buf}, &buf
}

func TestRemoveAsksFirst(t *testing.T) {
	ctx := context.Background()
	svc, pp, buf := setup(t)
	p, err := svc.AddProject(ctx, entity.ProjectDraft{Name: "Work"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddTask(ctx, entity.TaskDraft{Name: "a", ProjectID: p.ID}); err != nil {
		t.Fatal(err)
	}

	var asked string
	declined := &Remove{Service: svc, Printer: pp, ID: p.ID, Confirm: func(label string) bool {
		asked = label
		return false
	}}
	if err := declined.Do(ctx); !errors.Is(err, ErrAborted) {
		t.Fatalf("got %v, want ErrAborted", err)
	}
	if !strings.Contains(asked, `"Work" and its 1 task`) {
		t.Fatalf("prompt %q", asked)
	}
	if len(svc.Projects()) != 1 {
		t.Fatal("declined delete removed the project")
	}

	forced := &Remove{Service: svc, Printer: pp, ID: p.ID, Yes: true, Confirm: func(string) bool {
		t.Fatal("--yes still prompted")
		return false
	}}
	if err := forced.Do(ctx); err != nil {
		t.Fatal(err)
	}
	if len(svc.Projects()) != 0 || len(svc.Tasks()) != 0 {
		t.Fatal("cascade did not run")
	}
	if !strings.Contains(buf.String(), "Removed Work - 1 task") {
		t.Fatalf("output %q", buf.String())
	}
}

func TestRemoveUnknown(t *testing.T) {
	svc, pp, _ := setup(t)
	err := (&Remove{Service: svc, Printer: pp, ID: "project-x", Yes: true}).Do(context.Background())
	if !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestEditNeedsAChange(t *testing.T) {
	svc, pp, _ := setup(t)
	err := (&Edit{Service: svc, Printer: pp, ID: "project-x"}).Do(context.Background())
	if !errors.Is(err, app.ErrValidation) {
		t.Fatalf("got %v", err)
	}
}
