// Package project holds the runners behind `planner project`.
package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/printers"
)

// ErrAborted is returned when a confirmation is declined.
var ErrAborted = errors.New("project: aborted")

// Add creates a project.
type Add struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	Draft entity.ProjectDraft
}

// Do runs the add.
func (n *Add) Do(ctx context.Context) error {
	p, err := n.Service.AddProject(ctx, n.Draft)
	if err != nil {
		return err
	}
	if n.JSON {
		return n.Printer.JSON(p)
	}
	return (&List{Service: n.Service, Printer: n.Printer}).Do(ctx)
}

// List prints projects with their completion.
type List struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool
}

// Do runs the list.
func (n *List) Do(_ context.Context) error {
	stats := n.Service.ProjectStats()
	if n.JSON {
		return n.Printer.JSON(stats)
	}
	n.Printer.TitleWithCount("Projects", len(stats), "project")
	n.Printer.Projects(stats)
	return nil
}

// Edit applies a patch.
type Edit struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	ID    string
	Patch entity.ProjectPatch
}

// Do runs the edit.
func (n *Edit) Do(ctx context.Context) error {
	if n.Patch == (entity.ProjectPatch{}) {
		return fmt.Errorf("project: %w: nothing to change", app.ErrValidation)
	}
	p, err := n.Service.UpdateProject(ctx, n.ID, n.Patch)
	if err != nil {
		return err
	}
	if n.JSON {
		return n.Printer.JSON(p)
	}
	return (&List{Service: n.Service, Printer: n.Printer}).Do(ctx)
}

// Remove deletes a project and its tasks. Unless Yes is set, Confirm is
// asked first; a nil Confirm prompts on the terminal.
type Remove struct {
	Service *app.Service
	Printer *printers.PrettyPrint

	ID      string
	Yes     bool
	Confirm func(label string) bool
}

// Do runs the delete.
func (n *Remove) Do(ctx context.Context) error {
	p, err := n.Service.Project(n.ID)
	if err != nil {
		return err
	}
	if !n.Yes {
		count := len(n.Service.TasksForProject(p.ID))
		label := fmt.Sprintf("Delete %q and its %d task(s)", p.Name, count)
		confirm := n.Confirm
		if confirm == nil {
			confirm = Prompt
		}
		if !confirm(label) {
			return ErrAborted
		}
	}
	removed, err := n.Service.DeleteProject(ctx, p.ID)
	if err != nil {
		return err
	}
	n.Printer.TitleWithCount("Removed "+p.Name, removed, "task")
	return nil
}

// Prompt asks a yes/no question on the terminal.
func Prompt(label string) bool {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . | bold }} ",
		Valid:   "{{ . | green }} ",
		Invalid: "{{ . | red }} ",
		Success: "{{ . | bold }} ",
	}
	prompt := promptui.Prompt{
		Label:     label,
		Templates: templates,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}
