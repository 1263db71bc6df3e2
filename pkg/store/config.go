package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// Driver selects the backend implementation.
type Driver string

const (
	DriverDisk   Driver = "disk"
	DriverSQLite Driver = "sqlite"
	DriverRedis  Driver = "redis"
	DriverMemory Driver = "memory"
)

// RedisOptions configures the redis backend.
type RedisOptions struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// SQLiteOptions configures the sqlite backend.
type SQLiteOptions struct {
	DSN string `mapstructure:"dsn"`
}

// Config describes where collections live.
type Config struct {
	Driver Driver        `mapstructure:"driver"`
	Path   string        `mapstructure:"path"`
	SQLite SQLiteOptions `mapstructure:"sqlite"`
	Redis  RedisOptions  `mapstructure:"redis"`
}

// Open builds the backend named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Backend, error) {
	switch Driver(strings.ToLower(string(cfg.Driver))) {
	case "", DriverDisk:
		path, err := homedir.Expand(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("store: expand path %q: %w", cfg.Path, err)
		}
		return OpenDisk(path)
	case DriverSQLite:
		dsn := cfg.SQLite.DSN
		if dsn != ":memory:" {
			expanded, err := homedir.Expand(dsn)
			if err != nil {
				return nil, fmt.Errorf("store: expand dsn %q: %w", dsn, err)
			}
			dsn = expanded
		}
		return OpenSQLite(ctx, dsn)
	case DriverRedis:
		return OpenRedis(ctx, cfg.Redis)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
