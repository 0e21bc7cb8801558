// Package memory holds process-local stores.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/dirhook/pkg/domain/model"
)

// ScanRegistry keeps scan tasks in memory. Finished tasks are evicted ttl
// after completion; a zero ttl keeps them for the process lifetime.
type ScanRegistry struct {
	mu    sync.RWMutex
	tasks map[string]*model.ScanTask
	ttl   time.Duration
	now   func() time.Time
}

// Option configures a ScanRegistry
type Option func(*ScanRegistry)

// WithTTL sets how long finished tasks are kept
func WithTTL(ttl time.Duration) Option {
	return func(r *ScanRegistry) {
		r.ttl = ttl
	}
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(r *ScanRegistry) {
		r.now = now
	}
}

// NewScanRegistry creates an empty registry
func NewScanRegistry(opts ...Option) *ScanRegistry {
	r := &ScanRegistry{
		tasks: make(map[string]*model.ScanTask),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create registers a new pending task under a fresh identifier
func (r *ScanRegistry) Create(ctx context.Context) (*model.ScanTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictExpired()

	task := &model.ScanTask{
		ID:        uuid.NewString(),
		Status:    model.ScanStatusPending,
		CreatedAt: r.now(),
	}
	r.tasks[task.ID] = task

	return copyTask(task), nil
}

// Complete stores the snapshot of a pending task
func (r *ScanRegistry) Complete(ctx context.Context, id string, snapshot *model.Snapshot) error {
	return r.finish(id, func(task *model.ScanTask) {
		task.Status = model.ScanStatusSucceeded
		task.Snapshot = snapshot
	})
}

// Fail records the error of a pending task
func (r *ScanRegistry) Fail(ctx context.Context, id string, cause error) error {
	return r.finish(id, func(task *model.ScanTask) {
		task.Status = model.ScanStatusFailed
		task.Error = cause.Error()
	})
}

func (r *ScanRegistry) finish(id string, update func(task *model.ScanTask)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return goerr.Wrap(model.ErrTaskNotFound, "cannot finish scan task", goerr.V("task_id", id))
	}
	if task.IsDone() {
		return goerr.New("scan task already finished",
			goerr.V("task_id", id),
			goerr.V("status", task.Status),
		)
	}

	update(task)
	task.CompletedAt = r.now()

	return nil
}

// Get returns a copy of the task. ok is false for unknown or evicted IDs.
func (r *ScanRegistry) Get(ctx context.Context, id string) (*model.ScanTask, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok || r.expired(task) {
		return nil, false
	}
	return copyTask(task), true
}

// Len returns the number of tasks held, expired ones included until the next
// eviction
func (r *ScanRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}

func (r *ScanRegistry) expired(task *model.ScanTask) bool {
	if r.ttl <= 0 || !task.IsDone() {
		return false
	}
	return r.now().Sub(task.CompletedAt) > r.ttl
}

// evictExpired must be called with the write lock held
func (r *ScanRegistry) evictExpired() {
	if r.ttl <= 0 {
		return
	}
	for id, task := range r.tasks {
		if r.expired(task) {
			delete(r.tasks, id)
		}
	}
}

// copyTask returns a shallow copy; the snapshot itself is immutable
func copyTask(task *model.ScanTask) *model.ScanTask {
	c := *task
	return &c
}
