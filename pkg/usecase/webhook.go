package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/dirhook/pkg/domain/interfaces"
	"github.com/m-mizutani/dirhook/pkg/domain/model"
	"github.com/m-mizutani/dirhook/pkg/utils/ctxlog"
)

type webhookUseCase struct {
	branch     string
	runner     interfaces.SyncRunner
	dispatcher interfaces.Dispatcher
}

// WebhookOption configures the webhook use case
type WebhookOption func(*webhookUseCase)

// WithSyncDispatcher sets where sync script runs are scheduled, typically a
// bounded worker pool
func WithSyncDispatcher(d interfaces.Dispatcher) WebhookOption {
	return func(uc *webhookUseCase) {
		uc.dispatcher = d
	}
}

// NewWebhook creates a new instance of WebhookUseCase. runner may be nil, in
// which case matching pushes are only logged.
func NewWebhook(branch string, runner interfaces.SyncRunner, opts ...WebhookOption) *webhookUseCase {
	uc := &webhookUseCase{
		branch:     branch,
		runner:     runner,
		dispatcher: detached,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ProcessEvent triggers the sync script on a push to the configured branch.
// The script runs in the background; its outcome never reaches the caller.
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)

	logger.Info("Processing webhook event",
		"id", event.ID,
		"type", event.Type,
		"ref", event.Ref,
		"repository", event.Repository,
		"sender", event.Sender,
	)

	if !event.IsPushTo(uc.branch) {
		logger.Info("Ignoring event",
			"type", event.Type,
			"ref", event.Ref,
			"branch", uc.branch,
		)
		return nil
	}

	if uc.runner == nil {
		logger.Warn("Push received but no sync script is configured", "ref", event.Ref)
		return nil
	}

	uc.dispatcher.Dispatch(ctx, func(ctx context.Context) error {
		return uc.runSync(ctx, event)
	})

	return nil
}

func (uc *webhookUseCase) runSync(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)
	logger.Info("Running sync script", "ref", event.Ref, "after", event.After)

	result, err := uc.runner.Run(ctx)
	if result != nil {
		logger.Info("Sync script finished",
			"exit_code", result.ExitCode,
			"duration_ms", result.Duration.Milliseconds(),
			"stdout", result.Stdout,
			"stderr", result.Stderr,
		)
	}
	if err != nil {
		return goerr.Wrap(err, "sync script failed",
			goerr.V("delivery_id", event.ID),
			goerr.V("ref", event.Ref),
			goerr.V("after", event.After),
		)
	}

	return nil
}
