package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ConfigOptions are the global flags that override configuration.
type ConfigOptions struct {
	LogLevel string
	Store    string
	Theme    string
}

// AddConfigArgs registers the flags on the root command and binds them to
// viper so they win over the config file and environment.
func AddConfigArgs(cmd *cobra.Command, o *ConfigOptions) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.LogLevel, "log-level", "", "Log level: debug, info, warn or error.")
	flags.StringVar(&o.Store, "store", "", "Store driver: disk, sqlite, redis or memory.")
	flags.StringVar(&o.Theme, "theme", "", "Theme: light, dark or auto.")
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("store.driver", flags.Lookup("store"))
	_ = viper.BindPFlag("theme", flags.Lookup("theme"))
}
