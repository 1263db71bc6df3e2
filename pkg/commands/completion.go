package commands

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "completion [bash|zsh|fish]",
		Short:     "Generates shell completion scripts",
		ValidArgs: []string{"bash", "zsh", "fish"},
		Args:      cobra.MaximumNArgs(1),
		Long: `To load completion run

. <(planner completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(planner completion)
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := "bash"
			if len(args) == 1 {
				shell = args[0]
			}
			out := cmd.OutOrStdout()
			switch shell {
			case "zsh":
				return topLevel.GenZshCompletion(out)
			case "fish":
				return topLevel.GenFishCompletion(out, true)
			default:
				return topLevel.GenBashCompletionV2(out, true)
			}
		},
	}

	topLevel.AddCommand(cmd)
}

// projectCompletions lists project ids starting with toComplete, described
// by the project name.
func projectCompletions(toComplete string) []string {
	svc, _, err := openService(context.Background())
	if err != nil {
		log.WithError(err).Debug("completion: no store")
		return nil
	}
	var out []string
	for _, p := range svc.Projects() {
		if strings.HasPrefix(p.ID, toComplete) {
			out = append(out, p.ID+"\t"+p.Name)
		}
	}
	return out
}

func registerProjectCompletion(cmd *cobra.Command, flag string) {
	_ = cmd.RegisterFlagCompletionFunc(flag, func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return projectCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}
