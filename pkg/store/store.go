// Package store persists the planner's collections as JSON arrays under
// fixed keys in a pluggable key-value backend.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
)

// Key names one persisted collection.
type Key string

const (
	KeyTasks    Key = "productivity-tasks"
	KeyProjects Key = "productivity-projects"
	KeyHabits   Key = "productivity-habits"
)

// Keys lists every collection key.
func Keys() []Key {
	return []Key{KeyTasks, KeyProjects, KeyHabits}
}

func (k Key) valid() bool {
	for _, known := range Keys() {
		if k == known {
			return true
		}
	}
	return false
}

var (
	// ErrNotExist is returned by backends for a key that was never written.
	ErrNotExist = errors.New("store: key does not exist")
	// ErrPersistence wraps any failure to write a collection.
	ErrPersistence = errors.New("store: persistence failed")
)

// Backend is a minimal key-value store holding whole encoded collections.
type Backend interface {
	Read(ctx context.Context, key Key) ([]byte, error)
	Write(ctx context.Context, key Key, data []byte) error
	Close() error
}

// Watcher is implemented by backends that can report writes made by other
// processes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// codec encodes like encoding/json.
var codec = sonic.ConfigStd

// Load reads and decodes the collection stored under key. A missing key, a
// read error or undecodable data all yield an empty list; the latter two are
// logged since they may mean data loss.
func Load[T any](ctx context.Context, b Backend, key Key) []T {
	list := make([]T, 0)
	if b == nil {
		return list
	}
	data, err := b.Read(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotExist) {
			log.WithError(err).WithField("key", key).Warn("store: read failed, starting empty")
		}
		return list
	}
	if len(data) == 0 {
		return list
	}
	if err := codec.Unmarshal(data, &list); err != nil {
		log.WithError(err).WithField("key", key).Warn("store: decode failed, starting empty")
		return make([]T, 0)
	}
	if list == nil {
		list = make([]T, 0)
	}
	return list
}

// Save encodes the full list and overwrites key.
func Save[T any](ctx context.Context, b Backend, key Key, list []T) error {
	if b == nil {
		return fmt.Errorf("%w: no backend", ErrPersistence)
	}
	if list == nil {
		list = make([]T, 0)
	}
	data, err := codec.Marshal(list)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrPersistence, key, err)
	}
	if err := b.Write(ctx, key, data); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersistence, key, err)
	}
	return nil
}
