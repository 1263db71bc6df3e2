package commands

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/planner/pkg/config"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/theme"
)

func addTheme(topLevel *cobra.Command) {
	save := false

	cmd := &cobra.Command{
		Use:       "theme [toggle|light|dark|auto]",
		Short:     "Show or switch the color theme.",
		ValidArgs: []string{"toggle", "light", "dark", "auto"},
		Example: `
planner theme
planner theme toggle
planner theme light --save
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Load()
			if err != nil {
				return output.HandleError(err)
			}
			tm, err := themeManager(s)
			if err != nil {
				return output.HandleError(err)
			}
			setting := theme.Mode(s.Theme)
			if len(args) == 1 {
				if setting, err = applyTheme(tm, args[0]); err != nil {
					return output.HandleError(err)
				}
			}
			if save {
				if err := saveTheme(setting); err != nil {
					return output.HandleError(err)
				}
			}
			return output.HandleError(printTheme(cmd, tm.Mode(), setting))
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Write the choice to the config file.")
	topLevel.AddCommand(cmd)
}

// applyTheme switches tm and returns the setting to persist.
func applyTheme(tm *theme.Manager, arg string) (theme.Mode, error) {
	if strings.EqualFold(strings.TrimSpace(arg), "toggle") {
		return tm.Toggle(), nil
	}
	mode, err := theme.ParseMode(arg)
	if err != nil {
		return "", err
	}
	tm.Set(mode)
	return mode, nil
}

// saveTheme writes the setting into the config file in use, or creates
// ~/.planner.yaml.
func saveTheme(m theme.Mode) error {
	viper.Set("theme", string(m))
	if viper.ConfigFileUsed() != "" {
		return viper.WriteConfig()
	}
	path, err := homedir.Expand("~/.planner.yaml")
	if err != nil {
		return err
	}
	log.WithField("path", path).Debug("theme: creating config file")
	return viper.SafeWriteConfigAs(path)
}

func printTheme(cmd *cobra.Command, effective, setting theme.Mode) error {
	if output.JSON {
		return printers.New().JSON(map[string]string{
			"mode":    string(effective),
			"setting": string(setting),
		})
	}
	styles := theme.For(effective)
	line := fmt.Sprintf("Theme %s", effective)
	if setting == theme.Auto {
		line += " (auto)"
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s  %s  %s\n",
		styles.Panel.Title.Render(line),
		styles.Calendar.Today.Render(" today "),
		styles.Calendar.Cursor.Render(" cursor "),
		styles.Calendar.Candidate.Render(" drop "),
	)
	return err
}
