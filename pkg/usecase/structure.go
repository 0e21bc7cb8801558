package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/dirhook/pkg/domain/interfaces"
	"github.com/m-mizutani/dirhook/pkg/domain/model"
	"github.com/m-mizutani/dirhook/pkg/utils/ctxlog"
)

type structureUseCase struct {
	walker interfaces.TreeWalker
}

// NewStructure creates a StructureUseCase walking the project on every call
func NewStructure(walker interfaces.TreeWalker) interfaces.StructureUseCase {
	return &structureUseCase{walker: walker}
}

// GetStructurePage returns one byte-budget page of the flattened file list
func (uc *structureUseCase) GetStructurePage(ctx context.Context, page int, byteSize int64) (*model.BytePage, error) {
	snapshot, err := uc.walk(ctx)
	if err != nil {
		return nil, err
	}

	result, err := model.PaginateByBytes(snapshot, page, byteSize)
	if err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Debug("Built structure page",
		"page", page,
		"byte_size", byteSize,
		"files", len(result.Files),
		"total_pages", result.TotalPages,
	)

	return result, nil
}

// GetMetadata returns file count and total content size
func (uc *structureUseCase) GetMetadata(ctx context.Context) (*model.StructureMetadata, error) {
	snapshot, err := uc.walk(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Metadata(), nil
}

// GetTree returns the project as nested objects
func (uc *structureUseCase) GetTree(ctx context.Context) (map[string]any, error) {
	snapshot, err := uc.walk(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Tree(), nil
}

func (uc *structureUseCase) walk(ctx context.Context) (*model.Snapshot, error) {
	snapshot, err := uc.walker.Walk(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to walk project directory")
	}
	return snapshot, nil
}
