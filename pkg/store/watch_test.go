package store

import (
	"context"
	"testing"
	"time"
)

func TestDiskWatchEmitsCollectionChanges(t *testing.T) {
	d, err := OpenDisk(t.TempDir())
	if err != nil {
		t.Fatalf("open disk: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := d.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := Save(ctx, d, KeyTasks, []string{"a"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Key != KeyTasks {
				t.Fatalf("expected key %q, got %q", KeyTasks, evt.Key)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for collection change event")
		}
	}
}

func TestKeyForPathIgnoresForeignFiles(t *testing.T) {
	d, err := OpenDisk(t.TempDir())
	if err != nil {
		t.Fatalf("open disk: %v", err)
	}
	base := d.BasePath()
	if k, ok := d.keyForPath(base + "/productivity-habits"); !ok || k != KeyHabits {
		t.Fatalf("expected habits key, got %q %v", k, ok)
	}
	for _, p := range []string{base + "/notes.txt", base + "/.tmp/productivity-tasks", base} {
		if _, ok := d.keyForPath(p); ok {
			t.Fatalf("expected %q to be ignored", p)
		}
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	th := newEventThrottle(20 * time.Millisecond)
	defer th.Stop()

	got := make(chan Event, 8)
	send := func(ev Event) { got <- ev }
	for i := 0; i < 5; i++ {
		th.Enqueue(Event{Type: EventCollectionChanged, Key: KeyTasks}, send)
	}
	th.Enqueue(Event{Type: EventCollectionChanged, Key: KeyHabits}, send)

	seen := map[Key]int{}
	timeout := time.After(time.Second)
	for len(seen) < 2 {
		select {
		case ev := <-got:
			seen[ev.Key]++
		case <-timeout:
			t.Fatalf("timed out, saw %v", seen)
		}
	}
	select {
	case ev := <-got:
		t.Fatalf("unexpected extra event %+v", ev)
	case <-time.After(60 * time.Millisecond):
	}
	if seen[KeyTasks] != 1 || seen[KeyHabits] != 1 {
		t.Fatalf("expected one event per key, got %v", seen)
	}
}
