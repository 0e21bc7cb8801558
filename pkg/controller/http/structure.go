package http

import (
	"net/http"

	"github.com/m-mizutani/dirhook/pkg/domain/interfaces"
	"github.com/m-mizutani/dirhook/pkg/domain/model"
	"github.com/m-mizutani/dirhook/pkg/utils/ctxlog"
)

// StructureHandler serves synchronous walks of the project directory
type StructureHandler struct {
	structureUC interfaces.StructureUseCase
}

// NewStructureHandler creates a new StructureHandler
func NewStructureHandler(structureUC interfaces.StructureUseCase) *StructureHandler {
	return &StructureHandler{structureUC: structureUC}
}

// GetStructure handles GET /api/get_structure?page=&byteSize=
func (h *StructureHandler) GetStructure(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := model.DefaultPage
	byteSize := int64(model.DefaultByteSize)
	query := r.URL.Query()
	if err := bindQuery(query, "page", &page); err != nil {
		writeError(ctx, w, err, http.StatusBadRequest)
		return
	}
	if err := bindQuery(query, "byteSize", &byteSize); err != nil {
		writeError(ctx, w, err, http.StatusBadRequest)
		return
	}

	result, err := h.structureUC.GetStructurePage(ctx, page, byteSize)
	if err != nil {
		ctxlog.From(ctx).Error("Failed to build structure page", "error", err)
		writeError(ctx, w, err, errorStatus(err))
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

// GetMetadata handles GET /api/get_structure/metadata
func (h *StructureHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	meta, err := h.structureUC.GetMetadata(ctx)
	if err != nil {
		ctxlog.From(ctx).Error("Failed to build structure metadata", "error", err)
		writeError(ctx, w, err, errorStatus(err))
		return
	}

	writeJSON(ctx, w, http.StatusOK, meta)
}

// GetTree handles GET /api/get_structure/tree
func (h *StructureHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tree, err := h.structureUC.GetTree(ctx)
	if err != nil {
		ctxlog.From(ctx).Error("Failed to build structure tree", "error", err)
		writeError(ctx, w, err, errorStatus(err))
		return
	}

	writeJSON(ctx, w, http.StatusOK, tree)
}
