package http

import (
	"errors"
	"net/http"

	"github.com/m-mizutani/dirhook/pkg/domain/interfaces"
	"github.com/m-mizutani/dirhook/pkg/domain/model"
	"github.com/m-mizutani/dirhook/pkg/utils/ctxlog"
)

const messageTaskNotFound = "Task ID not found or scan not completed."

// ScanHandler serves background scans
type ScanHandler struct {
	scanUC interfaces.ScanUseCase
}

// NewScanHandler creates a new ScanHandler
func NewScanHandler(scanUC interfaces.ScanUseCase) *ScanHandler {
	return &ScanHandler{scanUC: scanUC}
}

type scanStartedResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

type scanStatusResponse struct {
	TaskID  string `json:"task_id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// StartScan handles GET /api/scan_project
func (h *ScanHandler) StartScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	task, err := h.scanUC.StartScan(ctx)
	if err != nil {
		ctxlog.From(ctx).Error("Failed to start scan", "error", err)
		writeError(ctx, w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, http.StatusOK, &scanStartedResponse{
		TaskID: task.ID,
		Status: model.ScanStatusStarted,
	})
}

// GetScanResult handles GET /api/get_scan_result?task_id=&page=&pageSize=
func (h *ScanHandler) GetScanResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	var taskID string
	page := model.DefaultPage
	pageSize := model.DefaultPageSize
	query := r.URL.Query()
	if err := requireQuery(query, "task_id", &taskID); err != nil {
		writeError(ctx, w, err, http.StatusBadRequest)
		return
	}
	if err := bindQuery(query, "page", &page); err != nil {
		writeError(ctx, w, err, http.StatusBadRequest)
		return
	}
	if err := bindQuery(query, "pageSize", &pageSize); err != nil {
		writeError(ctx, w, err, http.StatusBadRequest)
		return
	}

	result, err := h.scanUC.GetScanResult(ctx, taskID, page, pageSize)
	switch {
	case err == nil:
		writeJSON(ctx, w, http.StatusOK, result)

	case errors.Is(err, model.ErrTaskNotFound):
		logger.Info("Scan task not found", "task_id", taskID)
		writeJSON(ctx, w, http.StatusNotFound, map[string]string{
			"message": messageTaskNotFound,
		})

	case errors.Is(err, model.ErrTaskPending):
		writeJSON(ctx, w, http.StatusAccepted, &scanStatusResponse{
			TaskID: taskID,
			Status: string(model.ScanStatusPending),
		})

	case errors.Is(err, model.ErrTaskFailed):
		logger.Warn("Scan task failed", "task_id", taskID, "error", err)
		writeJSON(ctx, w, http.StatusInternalServerError, &scanStatusResponse{
			TaskID:  taskID,
			Status:  string(model.ScanStatusFailed),
			Message: err.Error(),
		})

	default:
		logger.Error("Failed to get scan result", "task_id", taskID, "error", err)
		writeError(ctx, w, err, errorStatus(err))
	}
}
