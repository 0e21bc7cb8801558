package http_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/m-mizutani/gt"

	controller "github.com/m-mizutani/dirhook/pkg/controller/http"
	"github.com/m-mizutani/dirhook/pkg/domain/model"
	dirfs "github.com/m-mizutani/dirhook/pkg/infra/fs"
	"github.com/m-mizutani/dirhook/pkg/infra/memory"
	"github.com/m-mizutani/dirhook/pkg/usecase"
)

const testSecret = "test-secret"

// generateSignature generates HMAC-SHA256 signature for testing
func generateSignature(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// spyRunner counts sync script runs
type spyRunner struct {
	calls atomic.Int32
}

func (s *spyRunner) Run(ctx context.Context) (*model.SyncResult, error) {
	s.calls.Add(1)
	return &model.SyncResult{}, nil
}

// inlineDispatcher runs jobs on the calling goroutine
type inlineDispatcher struct{}

func (inlineDispatcher) Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	_ = handler(ctx)
}

type testEnv struct {
	handler http.Handler
	runner  *spyRunner
}

// newTestEnv serves a project holding a.txt ("hello") and sub/b.bin (0xFF 0xFE)
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fs := memfs.New()
	gt.NoError(t, util.WriteFile(fs, "a.txt", []byte("hello"), 0o644))
	gt.NoError(t, util.WriteFile(fs, "sub/b.bin", []byte{0xFF, 0xFE}, 0o644))
	walker := dirfs.NewWalkerFS(fs, "project", nil)

	runner := &spyRunner{}
	webhookUC := usecase.NewWebhook("main", runner, usecase.WithSyncDispatcher(inlineDispatcher{}))
	structureUC := usecase.NewStructure(walker)
	scanUC := usecase.NewScan(walker, memory.NewScanRegistry(), usecase.WithScanDispatcher(inlineDispatcher{}))

	server, err := controller.NewServer(
		context.Background(),
		webhookUC,
		structureUC,
		scanUC,
		controller.WithAddr("localhost:0"),
		controller.WithWebhookSecret(testSecret),
		controller.WithProjectName(walker.ProjectName()),
	)
	gt.NoError(t, err)

	return &testEnv{handler: server.Handler, runner: runner}
}
