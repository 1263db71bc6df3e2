// Package config loads planner settings from .planner.yaml, PLANNER_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"tableflip.dev/planner/pkg/store"
)

// Server configures `planner serve`.
type Server struct {
	Addr      string `mapstructure:"addr"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

// Google holds OAuth client credentials for the calendar integration.
type Google struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURI  string `mapstructure:"redirect_uri"`
}

// Calendar tunes the calendar views.
type Calendar struct {
	MonthCap int `mapstructure:"month_cap"`
}

// Timer tunes the countdown timer.
type Timer struct {
	Minutes int `mapstructure:"minutes"`
}

// Log configures diagnostics.
type Log struct {
	Level string `mapstructure:"level"`
}

// Settings is the complete configuration.
type Settings struct {
	Store    store.Config `mapstructure:"store"`
	Theme    string       `mapstructure:"theme"`
	Log      Log          `mapstructure:"log"`
	Calendar Calendar     `mapstructure:"calendar"`
	Timer    Timer        `mapstructure:"timer"`
	Server   Server       `mapstructure:"server"`
	Google   Google       `mapstructure:"google"`
}

// Defaults registers default values on v.
func Defaults(v *viper.Viper) {
	v.SetDefault("store.driver", string(store.DriverDisk))
	v.SetDefault("store.path", "~/.planner.db")
	v.SetDefault("store.sqlite.dsn", "~/.planner.sqlite")
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.prefix", "planner:")
	v.SetDefault("theme", "auto")
	v.SetDefault("log.level", "info")
	v.SetDefault("calendar.month_cap", 3)
	v.SetDefault("timer.minutes", 25)
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.jwt_secret", "")
	v.SetDefault("google.client_id", "")
	v.SetDefault("google.client_secret", "")
	v.SetDefault("google.redirect_uri", "http://localhost:8080/auth/callback")
}

// Load reads settings using the global viper instance so flags bound by the
// CLI take precedence.
func Load() (*Settings, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads settings from v, searching for .planner.yaml in
// $PLANNER_CONFIG_PATH, the working directory and $HOME.
func LoadFrom(v *viper.Viper) (*Settings, error) {
	Defaults(v)
	v.SetConfigName(".planner") // .yaml is implicit
	v.SetEnvPrefix("PLANNER")
	v.AutomaticEnv()
	bindEnv(v)

	if override := os.Getenv("PLANNER_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	s.normalize()
	return s, nil
}

// LoadDotEnv loads each existing file in paths (default .env) into the
// environment. Variables that are already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("config: load %s: %w", p, err)
		}
	}
	return nil
}

// bindEnv wires the nested keys and the conventional Google variables,
// which AutomaticEnv alone does not map.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("store.driver", "PLANNER_STORE_DRIVER")
	_ = v.BindEnv("store.path", "PLANNER_STORE_PATH")
	_ = v.BindEnv("store.sqlite.dsn", "PLANNER_STORE_SQLITE_DSN")
	_ = v.BindEnv("store.redis.addr", "PLANNER_STORE_REDIS_ADDR")
	_ = v.BindEnv("store.redis.password", "PLANNER_STORE_REDIS_PASSWORD")
	_ = v.BindEnv("server.addr", "PLANNER_SERVER_ADDR")
	_ = v.BindEnv("server.jwt_secret", "PLANNER_JWT_SECRET")
	_ = v.BindEnv("google.client_id", "GOOGLE_CLIENT_ID")
	_ = v.BindEnv("google.client_secret", "GOOGLE_CLIENT_SECRET")
	_ = v.BindEnv("google.redirect_uri", "GOOGLE_REDIRECT_URI")
}

func (s *Settings) normalize() {
	if s.Calendar.MonthCap <= 0 {
		s.Calendar.MonthCap = 3
	}
	if s.Timer.Minutes <= 0 {
		s.Timer.Minutes = 25
	}
	if s.Store.Driver == "" {
		s.Store.Driver = store.DriverDisk
	}
}
