package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type record struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Marks map[string]bool `json:"marks,omitempty"`
}

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	ctx := context.Background()

	disk, err := OpenDisk(t.TempDir())
	if err != nil {
		t.Fatalf("open disk: %v", err)
	}

	lite, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "planner.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = lite.Close() })

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rds := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "planner:")
	t.Cleanup(func() { _ = rds.Close() })

	return map[string]Backend{
		"memory": NewMemory(),
		"disk":   disk,
		"sqlite": lite,
		"redis":  rds,
	}
}

func TestLoadMissingKeyIsEmpty(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got := Load[record](context.Background(), b, KeyTasks)
			if got == nil || len(got) != 0 {
				t.Fatalf("expected empty non-nil list, got %#v", got)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	want := []record{
		{ID: "1", Name: "one", Marks: map[string]bool{"2024-03-01": true, "2024-03-02": false}},
		{ID: "2", Name: "two"},
	}
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := Save(ctx, b, KeyHabits, want); err != nil {
				t.Fatalf("save: %v", err)
			}
			got := Load[record](ctx, b, KeyHabits)
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, want)
			}

			// Overwrite is unconditional.
			if err := Save(ctx, b, KeyHabits, want[:1]); err != nil {
				t.Fatalf("save: %v", err)
			}
			if got := Load[record](ctx, b, KeyHabits); len(got) != 1 {
				t.Fatalf("expected overwrite to shrink list, got %d", len(got))
			}
		})
	}
}

func TestLoadCorruptIsEmpty(t *testing.T) {
	m := NewMemory()
	m.Put(KeyProjects, []byte(`{"not": "an array"`))
	if got := Load[record](context.Background(), m, KeyProjects); len(got) != 0 {
		t.Fatalf("expected empty list for corrupt data, got %#v", got)
	}
	m.Put(KeyProjects, []byte(`null`))
	if got := Load[record](context.Background(), m, KeyProjects); got == nil {
		t.Fatal("expected non-nil list for null")
	}
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	m := NewMemory()
	if err := Save[record](context.Background(), m, KeyTasks, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, _ := m.Read(context.Background(), KeyTasks)
	if string(raw) != "[]" {
		t.Fatalf("expected [], got %s", raw)
	}
}

func TestSaveWrapsWriteFailure(t *testing.T) {
	m := NewMemory()
	m.FailWrites = errors.New("quota exceeded")
	err := Save(context.Background(), m, KeyTasks, []record{{ID: "1"}})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestOpenDrivers(t *testing.T) {
	ctx := context.Background()
	b, err := Open(ctx, Config{Driver: DriverDisk, Path: t.TempDir()})
	if err != nil {
		t.Fatalf("open disk: %v", err)
	}
	if _, ok := b.(Watcher); !ok {
		t.Fatal("disk backend should support watching")
	}
	if _, err := Open(ctx, Config{Driver: DriverSQLite, SQLite: SQLiteOptions{DSN: ":memory:"}}); err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if b, err := Open(ctx, Config{Driver: "MEMORY"}); err != nil || b == nil {
		t.Fatalf("open memory: %v", err)
	}
	if _, err := Open(ctx, Config{Driver: "etcd"}); err == nil {
		t.Fatal("expected unknown driver error")
	}
}
