package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/runner/project"
)

func addProject(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects", "p"},
		Short:   "Manage projects. Every task belongs to one.",
		Example: `
planner project add Home --color="#22c55e"
planner project list
`,
	}

	addProjectAdd(cmd)
	addProjectList(cmd)
	addProjectEdit(cmd)
	addProjectRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addProjectAdd(parent *cobra.Command) {
	draft := entity.ProjectDraft{}

	cmd := &cobra.Command{
		Use:   "add NAME...",
		Short: "Add a project.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft.Name = strings.Join(args, " ")
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := project.Add{
				Service: svc,
				Printer: newPrinter(s, true),
				JSON:    output.JSON,
				Draft:   draft,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&draft.Color, "color", "", "Hex color such as #3b82f6; defaults to the palette.")
	cmd.Flags().StringVar(&draft.Description, "description", "", "What the project is about.")
	parent.AddCommand(cmd)
}

func addProjectList(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects with their completion.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := project.List{
				Service: svc,
				Printer: newPrinter(s, true),
				JSON:    output.JSON,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}
	parent.AddCommand(cmd)
}

func addProjectEdit(parent *cobra.Command) {
	var name, color, description string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a project. Only the flags given are changed.",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return projectCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch entity.ProjectPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := project.Edit{
				Service: svc,
				Printer: newPrinter(s, true),
				JSON:    output.JSON,
				ID:      args[0],
				Patch:   patch,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name.")
	cmd.Flags().StringVar(&color, "color", "", "New hex color.")
	cmd.Flags().StringVar(&description, "description", "", "New description.")
	parent.AddCommand(cmd)
}

func addProjectRemove(parent *cobra.Command) {
	yes := false

	cmd := &cobra.Command{
		Use:   "rm ID",
		Short: options.Wrap80("Delete a project together with all of its tasks."),
		Example: `
planner project rm <id>
planner project rm <id> --yes
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return projectCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := project.Remove{
				Service: svc,
				Printer: newPrinter(s, false),
				ID:      args[0],
				Yes:     yes || output.JSON,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation.")
	parent.AddCommand(cmd)
}
