package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/config"
)

var (
	output = &options.OutputOptions{}
	co     = &options.ConfigOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "planner",
		Short: options.Wrap80("Plan tasks, projects and habits on a calendar from the command line."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			return setupLogging()
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)
	options.AddConfigArgs(cmd, co)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addTask(topLevel)
	addProject(topLevel)
	addHabit(topLevel)
	addCal(topLevel)
	addToday(topLevel)
	addTimer(topLevel)
	addTheme(topLevel)
	addServe(topLevel)
	addMCP(topLevel)
	addUI(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
}

// setupLogging sends diagnostics to stderr at the configured level. Printed
// results stay on stdout.
func setupLogging() error {
	s, err := config.Load()
	if err != nil {
		return err
	}
	level, err := log.ParseLevel(s.Log.Level)
	if err != nil {
		return err
	}
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{
		DisableColors: !isatty.IsTerminal(os.Stderr.Fd()),
		FullTimestamp: true,
	})
	return nil
}
