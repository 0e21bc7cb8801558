package usecase_test

import (
	"context"
	"sync"

	"github.com/m-mizutani/dirhook/pkg/domain/model"
)

// MockWalker is a mock implementation of TreeWalker
type MockWalker struct {
	walkFunc func(ctx context.Context) (*model.Snapshot, error)

	mu    sync.Mutex
	calls int
}

func (m *MockWalker) Walk(ctx context.Context) (*model.Snapshot, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.walkFunc != nil {
		return m.walkFunc(ctx)
	}
	return &model.Snapshot{ProjectName: "project"}, nil
}

func (m *MockWalker) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockSyncRunner is a mock implementation of SyncRunner
type MockSyncRunner struct {
	runFunc func(ctx context.Context) (*model.SyncResult, error)

	mu    sync.Mutex
	calls int
}

func (m *MockSyncRunner) Run(ctx context.Context) (*model.SyncResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.runFunc != nil {
		return m.runFunc(ctx)
	}
	return &model.SyncResult{}, nil
}

func (m *MockSyncRunner) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// inlineDispatcher runs jobs synchronously and records their errors
type inlineDispatcher struct {
	errs []error
}

func (d *inlineDispatcher) Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	d.errs = append(d.errs, handler(ctx))
}

// deferredDispatcher keeps jobs until Flush is called
type deferredDispatcher struct {
	jobs []func(ctx context.Context) error
}

func (d *deferredDispatcher) Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	d.jobs = append(d.jobs, handler)
}

func (d *deferredDispatcher) Flush(ctx context.Context) []error {
	var errs []error
	for _, job := range d.jobs {
		errs = append(errs, job(ctx))
	}
	d.jobs = nil
	return errs
}

func testSnapshot() *model.Snapshot {
	return &model.Snapshot{
		ProjectName: "project",
		Folders: []model.FolderRecord{
			{Folder: ".", Files: []model.FileRecord{model.NewFileRecord("a.txt", []byte("hello"))}},
			{Folder: "sub", Files: []model.FileRecord{model.NewFileRecord("b.bin", []byte{0xFF, 0xFE})}},
		},
	}
}
