package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	githubctrl "github.com/m-mizutani/dirhook/pkg/controller/github"
	"github.com/m-mizutani/dirhook/pkg/domain/interfaces"
	"github.com/m-mizutani/dirhook/pkg/utils/ctxlog"
)

const signaturePrefix = "sha256="

// WebhookHandler handles GitHub webhooks
type WebhookHandler struct {
	secret    string
	webhookUC interfaces.WebhookUseCase
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(secret string, webhookUC interfaces.WebhookUseCase) *WebhookHandler {
	return &WebhookHandler{
		secret:    secret,
		webhookUC: webhookUC,
	}
}

// Handle processes webhook requests
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	// Read payload
	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Verify signature over the exact bytes received
	signature := r.Header.Get("X-Hub-Signature-256")
	if !h.verifySignature(body, signature) {
		logger.Warn("Invalid webhook signature", "delivery_id", r.Header.Get("X-GitHub-Delivery"))
		writeStatus(ctx, w, http.StatusUnauthorized, "unauthorized")
		return
	}

	event, err := githubctrl.ParseEvent(r.Header.Get("X-GitHub-Event"), r.Header.Get("X-GitHub-Delivery"), body)
	if err != nil {
		logger.Error("Failed to parse webhook payload", "error", err)
		writeError(ctx, w, err, http.StatusBadRequest)
		return
	}

	// Process event via UseCase
	if err := h.webhookUC.ProcessEvent(ctx, event); err != nil {
		logger.Error("Failed to process webhook event", "error", err)
		writeError(ctx, w, err, http.StatusInternalServerError)
		return
	}

	writeStatus(ctx, w, http.StatusOK, "success")
}

// verifySignature checks signature against sha256=HMAC-SHA256(secret, payload)
// in constant time
func (h *WebhookHandler) verifySignature(payload []byte, signature string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(payload)
	expected := signaturePrefix + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}

func writeStatus(ctx context.Context, w http.ResponseWriter, code int, status string) {
	writeJSON(ctx, w, code, map[string]string{
		"status": status,
	})
}
