package interfaces

import (
	"context"

	"github.com/m-mizutani/dirhook/pkg/domain/model"
)

// TreeWalker builds a snapshot of the project directory
type TreeWalker interface {
	Walk(ctx context.Context) (*model.Snapshot, error)
}

// ScanRegistry stores background scan tasks
type ScanRegistry interface {
	// Create registers a pending task under a fresh identifier
	Create(ctx context.Context) (*model.ScanTask, error)

	// Complete moves a pending task to succeeded
	Complete(ctx context.Context, id string, snapshot *model.Snapshot) error

	// Fail moves a pending task to failed
	Fail(ctx context.Context, id string, cause error) error

	// Get returns the task, ok is false if it is unknown
	Get(ctx context.Context, id string) (*model.ScanTask, bool)
}

// SyncRunner runs the external sync script
type SyncRunner interface {
	Run(ctx context.Context) (*model.SyncResult, error)
}

// Dispatcher runs a job without blocking the caller
type Dispatcher interface {
	Dispatch(ctx context.Context, handler func(ctx context.Context) error)
}
