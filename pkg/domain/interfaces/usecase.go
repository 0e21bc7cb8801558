package interfaces

import (
	"context"

	"github.com/m-mizutani/dirhook/pkg/domain/model"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent processes a verified webhook event
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}

// StructureUseCase serves synchronous walks of the project directory
type StructureUseCase interface {
	// GetStructurePage walks the project and returns one byte-budget page
	GetStructurePage(ctx context.Context, page int, byteSize int64) (*model.BytePage, error)

	// GetMetadata walks the project and returns totals only
	GetMetadata(ctx context.Context) (*model.StructureMetadata, error)

	// GetTree walks the project and returns it as nested objects
	GetTree(ctx context.Context) (map[string]any, error)
}

// ScanUseCase runs walks in the background and serves their results
type ScanUseCase interface {
	// StartScan schedules a walk and returns its pending task immediately
	StartScan(ctx context.Context) (*model.ScanTask, error)

	// GetScanResult returns a folder-record page of a finished scan.
	// Errors wrap model.ErrTaskNotFound, ErrTaskPending or ErrTaskFailed.
	GetScanResult(ctx context.Context, taskID string, page, pageSize int) (*model.FolderPage, error)
}
