package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"tableflip.dev/planner/pkg/store"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PLANNER_CONFIG_PATH", t.TempDir())
	t.Chdir(t.TempDir())

	s, err := LoadFrom(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Store.Driver != store.DriverDisk {
		t.Fatalf("expected disk driver, got %q", s.Store.Driver)
	}
	if s.Store.Path != "~/.planner.db" {
		t.Fatalf("unexpected default path %q", s.Store.Path)
	}
	if s.Calendar.MonthCap != 3 || s.Timer.Minutes != 25 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.Google.RedirectURI != "http://localhost:8080/auth/callback" {
		t.Fatalf("unexpected redirect %q", s.Google.RedirectURI)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PLANNER_CONFIG_PATH", dir)
	t.Chdir(t.TempDir())
	yaml := []byte(`
store:
  driver: sqlite
  sqlite:
    dsn: /tmp/x.db
theme: dark
calendar:
  month_cap: 4
`)
	if err := os.WriteFile(filepath.Join(dir, ".planner.yaml"), yaml, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GOOGLE_CLIENT_ID", "client-123")

	s, err := LoadFrom(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Store.Driver != store.DriverSQLite || s.Store.SQLite.DSN != "/tmp/x.db" {
		t.Fatalf("unexpected store config %+v", s.Store)
	}
	if s.Theme != "dark" || s.Calendar.MonthCap != 4 {
		t.Fatalf("unexpected settings %+v", s)
	}
	if s.Google.ClientID != "client-123" {
		t.Fatalf("expected env client id, got %q", s.Google.ClientID)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("GOOGLE_CLIENT_ID", "")
	os.Unsetenv("GOOGLE_CLIENT_ID")
	t.Setenv("PLANNER_JWT_SECRET", "from-env")

	env := []byte("GOOGLE_CLIENT_ID=abc.apps.googleusercontent.com\nPLANNER_JWT_SECRET=from-file\n")
	if err := os.WriteFile(filepath.Join(dir, ".env"), env, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("GOOGLE_CLIENT_ID"); got != "abc.apps.googleusercontent.com" {
		t.Fatalf("GOOGLE_CLIENT_ID = %q", got)
	}
	if got := os.Getenv("PLANNER_JWT_SECRET"); got != "from-env" {
		t.Fatalf("existing variable was overwritten: %q", got)
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing files should be skipped: %v", err)
	}
}
