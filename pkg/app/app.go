package app

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/store"
)

var (
	ErrValidation  = entity.ErrValidation
	ErrNotFound    = entity.ErrNotFound
	ErrPersistence = store.ErrPersistence

	errNoBackend = errors.New("app: no persistence configured")
)

// Change tells subscribers which collections were replaced.
type Change struct {
	Keys []store.Key
}

// Has reports whether key is part of the change.
func (c Change) Has(key store.Key) bool {
	for _, k := range c.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Service owns the task, project and habit collections. Every mutation
// replaces the affected collection as a whole and then saves it.
type Service struct {
	Backend store.Backend

	// Now is the clock; defaults to time.Now.
	Now func() time.Time

	// Notify receives save failures. The default logs a warning.
	Notify func(error)

	// Strict makes mutations return save failures in addition to notifying.
	// One-shot CLI runs want this; long-lived UIs keep going.
	Strict bool

	mu       sync.RWMutex
	tasks    []entity.Task
	projects []entity.Project
	habits   []entity.Habit

	subMu   sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// Open creates a Service over backend and loads every collection.
func Open(ctx context.Context, backend store.Backend) (*Service, error) {
	if backend == nil {
		return nil, errNoBackend
	}
	s := &Service{Backend: backend}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory collections with what the backend holds.
func (s *Service) Reload(ctx context.Context) error {
	if s.Backend == nil {
		return errNoBackend
	}
	tasks := store.Load[entity.Task](ctx, s.Backend, store.KeyTasks)
	projects := store.Load[entity.Project](ctx, s.Backend, store.KeyProjects)
	habits := store.Load[entity.Habit](ctx, s.Backend, store.KeyHabits)

	s.mu.Lock()
	s.tasks, s.projects, s.habits = tasks, projects, habits
	s.mu.Unlock()

	s.publish(Change{Keys: store.Keys()})
	return nil
}

// Watch forwards backend change events when the backend supports it.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	w, ok := s.Backend.(store.Watcher)
	if !ok {
		return nil, errors.New("app: backend does not support watching")
	}
	return w.Watch(ctx)
}

// Follow reloads whenever the backend reports a change, until ctx ends.
// It fails at once for backends that cannot be watched.
func (s *Service) Follow(ctx context.Context) error {
	events, err := s.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			log.WithField("key", ev.Key).Debug("app: store changed, reloading")
			if err := s.Reload(ctx); err != nil {
				s.report(err)
			}
		}
	}
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (s *Service) Subscribe(fn func(Change)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func(Change))
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Service) publish(c Change) {
	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// persist saves the named collections. Callers hold s.mu.
func (s *Service) persist(ctx context.Context, keys ...store.Key) error {
	var firstErr error
	for _, key := range keys {
		var err error
		switch key {
		case store.KeyTasks:
			err = store.Save(ctx, s.Backend, key, s.tasks)
		case store.KeyProjects:
			err = store.Save(ctx, s.Backend, key, s.projects)
		case store.KeyHabits:
			err = store.Save(ctx, s.Backend, key, s.habits)
		}
		if err != nil {
			s.report(err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if s.Strict {
		return firstErr
	}
	return nil
}

func (s *Service) report(err error) {
	if s.Notify != nil {
		s.Notify(err)
		return
	}
	log.WithError(err).Warn("app: changes were not saved")
}

// commit persists keys, releases s.mu and then notifies subscribers.
// Callers hold s.mu.
func (s *Service) commit(ctx context.Context, keys ...store.Key) error {
	err := s.persist(ctx, keys...)
	s.mu.Unlock()
	s.publish(Change{Keys: keys})
	return err
}

// Snapshot is a consistent copy of every collection.
type Snapshot struct {
	Tasks    []entity.Task    `json:"tasks"`
	Projects []entity.Project `json:"projects"`
	Habits   []entity.Habit   `json:"habits"`
}

// Snapshot copies all collections under one read lock.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Tasks:    cloneTasks(s.tasks),
		Projects: cloneProjects(s.projects),
		Habits:   cloneHabits(s.habits),
	}
}

func cloneTasks(in []entity.Task) []entity.Task {
	out := make([]entity.Task, len(in))
	copy(out, in)
	return out
}

func cloneProjects(in []entity.Project) []entity.Project {
	out := make([]entity.Project, len(in))
	copy(out, in)
	return out
}

func cloneHabits(in []entity.Habit) []entity.Habit {
	out := make([]entity.Habit, len(in))
	for i, h := range in {
		out[i] = cloneHabit(h)
	}
	return out
}

func cloneHabit(h entity.Habit) entity.Habit {
	m := make(map[string]bool, len(h.Completions))
	for k, v := range h.Completions {
		m[k] = v
	}
	h.Completions = m
	return h
}
