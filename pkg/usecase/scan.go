package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/dirhook/pkg/domain/interfaces"
	"github.com/m-mizutani/dirhook/pkg/domain/model"
	"github.com/m-mizutani/dirhook/pkg/utils/ctxlog"
)

type scanUseCase struct {
	walker     interfaces.TreeWalker
	registry   interfaces.ScanRegistry
	dispatcher interfaces.Dispatcher
}

// ScanOption configures the scan use case
type ScanOption func(*scanUseCase)

// WithScanDispatcher replaces the detached goroutine dispatcher
func WithScanDispatcher(d interfaces.Dispatcher) ScanOption {
	return func(uc *scanUseCase) {
		uc.dispatcher = d
	}
}

// NewScan creates a ScanUseCase
func NewScan(walker interfaces.TreeWalker, registry interfaces.ScanRegistry, opts ...ScanOption) interfaces.ScanUseCase {
	uc := &scanUseCase{
		walker:     walker,
		registry:   registry,
		dispatcher: detached,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// StartScan registers a pending task and walks the project in the background.
// Concurrent scans are independent; nothing is deduplicated.
func (uc *scanUseCase) StartScan(ctx context.Context) (*model.ScanTask, error) {
	task, err := uc.registry.Create(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create scan task")
	}

	ctxlog.From(ctx).Info("Scan started", "task_id", task.ID)

	taskID := task.ID
	uc.dispatcher.Dispatch(ctx, func(ctx context.Context) error {
		return uc.runScan(ctx, taskID)
	})

	return task, nil
}

func (uc *scanUseCase) runScan(ctx context.Context, taskID string) error {
	logger := ctxlog.From(ctx)

	snapshot, walkErr := uc.walker.Walk(ctx)
	if walkErr != nil {
		if err := uc.registry.Fail(ctx, taskID, walkErr); err != nil {
			return goerr.Wrap(err, "failed to record scan failure", goerr.V("task_id", taskID))
		}
		return goerr.Wrap(walkErr, "scan failed", goerr.V("task_id", taskID))
	}

	if err := uc.registry.Complete(ctx, taskID, snapshot); err != nil {
		return goerr.Wrap(err, "failed to store scan result", goerr.V("task_id", taskID))
	}

	logger.Info("Scan completed",
		"task_id", taskID,
		"folders", len(snapshot.Folders),
	)
	return nil
}

// GetScanResult returns one page of folder records of a succeeded scan
func (uc *scanUseCase) GetScanResult(ctx context.Context, taskID string, page, pageSize int) (*model.FolderPage, error) {
	task, ok := uc.registry.Get(ctx, taskID)
	if !ok {
		return nil, goerr.Wrap(model.ErrTaskNotFound, "unknown scan task", goerr.V("task_id", taskID))
	}

	switch task.Status {
	case model.ScanStatusPending:
		return nil, goerr.Wrap(model.ErrTaskPending, "scan not completed", goerr.V("task_id", taskID))
	case model.ScanStatusFailed:
		return nil, goerr.Wrap(model.ErrTaskFailed, task.Error, goerr.V("task_id", taskID))
	}

	return model.PaginateByFolders(task.Snapshot, page, pageSize)
}
