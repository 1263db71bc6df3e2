package app

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/store"
)

func TestFollowNeedsWatcher(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.Follow(context.Background()); err == nil {
		t.Fatal("memory backend cannot be watched")
	}
}

func TestFollowReloadsOutsideWrites(t *testing.T) {
	dir := t.TempDir()
	mine, err := store.OpenDisk(dir)
	if err != nil {
		t.Fatal(err)
	}
	theirs, err := store.OpenDisk(dir)
	if err != nil {
		t.Fatal(err)
	}
	svc, err := Open(context.Background(), mine)
	if err != nil {
		t.Fatal(err)
	}

	seen := make(chan struct{}, 16)
	svc.Subscribe(func(c Change) {
		if len(svc.Tasks()) == 1 {
			seen <- struct{}{}
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = svc.Follow(ctx) }()
	time.Sleep(50 * time.Millisecond)

	task := entity.NewTask(entity.TaskDraft{Name: "from elsewhere", ProjectID: "project-1"}, fixedNow)
	if err := store.Save(ctx, theirs, store.KeyTasks, []entity.Task{task}); err != nil {
		t.Fatal(err)
	}

	select {
	case <-seen:
	case <-time.After(3 * time.Second):
		t.Fatal("outside write was not picked up")
	}
}
