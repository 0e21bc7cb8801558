package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/dirhook/pkg/domain/model"
	"github.com/m-mizutani/dirhook/pkg/infra/memory"
)

func TestScanRegistry_Lifecycle(t *testing.T) {
	ctx := context.Background()
	registry := memory.NewScanRegistry()

	task, err := registry.Create(ctx)
	gt.NoError(t, err)
	gt.Value(t, task.ID).NotEqual("")
	gt.Equal(t, task.Status, model.ScanStatusPending)

	got, ok := registry.Get(ctx, task.ID)
	gt.True(t, ok)
	gt.Equal(t, got.Status, model.ScanStatusPending)

	snapshot := &model.Snapshot{ProjectName: "project"}
	gt.NoError(t, registry.Complete(ctx, task.ID, snapshot))

	got, ok = registry.Get(ctx, task.ID)
	gt.True(t, ok)
	gt.Equal(t, got.Status, model.ScanStatusSucceeded)
	gt.Equal(t, got.Snapshot.ProjectName, "project")
	gt.False(t, got.CompletedAt.IsZero())

	// a task leaves pending exactly once
	gt.Error(t, registry.Complete(ctx, task.ID, snapshot))
	gt.Error(t, registry.Fail(ctx, task.ID, errors.New("late failure")))
}

func TestScanRegistry_Fail(t *testing.T) {
	ctx := context.Background()
	registry := memory.NewScanRegistry()

	task, err := registry.Create(ctx)
	gt.NoError(t, err)
	gt.NoError(t, registry.Fail(ctx, task.ID, errors.New("permission denied")))

	got, ok := registry.Get(ctx, task.ID)
	gt.True(t, ok)
	gt.Equal(t, got.Status, model.ScanStatusFailed)
	gt.Equal(t, got.Error, "permission denied")
	gt.Value(t, got.Snapshot).Equal(nil)
}

func TestScanRegistry_UnknownID(t *testing.T) {
	ctx := context.Background()
	registry := memory.NewScanRegistry()

	_, ok := registry.Get(ctx, "never-registered")
	gt.False(t, ok)

	err := registry.Complete(ctx, "never-registered", &model.Snapshot{})
	gt.True(t, errors.Is(err, model.ErrTaskNotFound))
}

func TestScanRegistry_UniqueIDs(t *testing.T) {
	ctx := context.Background()
	registry := memory.NewScanRegistry()

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = map[string]bool{}
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, err := registry.Create(ctx)
			if err != nil {
				t.Error(err)
				return
			}
			_ = registry.Complete(ctx, task.ID, &model.Snapshot{})

			mu.Lock()
			ids[task.ID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	gt.Equal(t, len(ids), 50)
	gt.Equal(t, registry.Len(), 50)
}

func TestScanRegistry_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	registry := memory.NewScanRegistry(
		memory.WithTTL(time.Minute),
		memory.WithClock(clock),
	)

	done, err := registry.Create(ctx)
	gt.NoError(t, err)
	gt.NoError(t, registry.Complete(ctx, done.ID, &model.Snapshot{}))

	pending, err := registry.Create(ctx)
	gt.NoError(t, err)

	now = now.Add(2 * time.Minute)

	_, ok := registry.Get(ctx, done.ID)
	gt.False(t, ok)

	// pending tasks never expire
	_, ok = registry.Get(ctx, pending.ID)
	gt.True(t, ok)

	// eviction happens on the next create
	_, err = registry.Create(ctx)
	gt.NoError(t, err)
	gt.Equal(t, registry.Len(), 2)
}
