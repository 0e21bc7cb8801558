package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/dirhook/pkg/domain/model"
	"github.com/m-mizutani/dirhook/pkg/usecase"
)

func TestWebhookUseCase_ProcessEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     *model.WebhookEvent
		wantCalls int
	}{
		{
			name: "Push to configured branch runs sync",
			event: &model.WebhookEvent{
				ID:         "test-delivery-1",
				Type:       model.EventTypePush,
				Ref:        "refs/heads/main",
				Repository: "test/repo",
				Sender:     "testuser",
				ReceivedAt: time.Now(),
			},
			wantCalls: 1,
		},
		{
			name: "Push to another branch is ignored",
			event: &model.WebhookEvent{
				ID:         "test-delivery-2",
				Type:       model.EventTypePush,
				Ref:        "refs/heads/develop",
				Repository: "test/repo",
				ReceivedAt: time.Now(),
			},
			wantCalls: 0,
		},
		{
			name: "Ping event is ignored",
			event: &model.WebhookEvent{
				ID:         "test-delivery-3",
				Type:       model.EventTypePing,
				ReceivedAt: time.Now(),
			},
			wantCalls: 0,
		},
		{
			name: "Unknown event type is ignored",
			event: &model.WebhookEvent{
				ID:         "test-delivery-4",
				Type:       model.EventTypeUnknown,
				Ref:        "refs/heads/main",
				ReceivedAt: time.Now(),
			},
			wantCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &MockSyncRunner{}
			dispatcher := &inlineDispatcher{}
			uc := usecase.NewWebhook("main", runner, usecase.WithSyncDispatcher(dispatcher))

			err := uc.ProcessEvent(context.Background(), tt.event)
			gt.NoError(t, err)
			gt.Equal(t, runner.Calls(), tt.wantCalls)
			gt.A(t, dispatcher.errs).Length(tt.wantCalls)
		})
	}
}

func TestWebhookUseCase_SyncFailureIsNotPropagated(t *testing.T) {
	runner := &MockSyncRunner{
		runFunc: func(ctx context.Context) (*model.SyncResult, error) {
			return &model.SyncResult{ExitCode: 1, Stderr: "boom"}, errors.New("exit status 1")
		},
	}
	dispatcher := &inlineDispatcher{}
	uc := usecase.NewWebhook("main", runner, usecase.WithSyncDispatcher(dispatcher))

	err := uc.ProcessEvent(context.Background(), &model.WebhookEvent{
		Type: model.EventTypePush,
		Ref:  "refs/heads/main",
	})
	gt.NoError(t, err)
	gt.Equal(t, runner.Calls(), 1)
	gt.A(t, dispatcher.errs).Length(1)
	gt.Error(t, dispatcher.errs[0])
}

func TestWebhookUseCase_DoesNotWaitForSync(t *testing.T) {
	release := make(chan struct{})
	finished := make(chan struct{})
	runner := &MockSyncRunner{
		runFunc: func(ctx context.Context) (*model.SyncResult, error) {
			<-release
			close(finished)
			return &model.SyncResult{}, nil
		},
	}
	uc := usecase.NewWebhook("main", runner)

	err := uc.ProcessEvent(context.Background(), &model.WebhookEvent{
		Type: model.EventTypePush,
		Ref:  "refs/heads/main",
	})
	gt.NoError(t, err)

	close(release)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("sync did not run within timeout")
	}
}

func TestWebhookUseCase_NoRunnerConfigured(t *testing.T) {
	uc := usecase.NewWebhook("main", nil)

	err := uc.ProcessEvent(context.Background(), &model.WebhookEvent{
		Type: model.EventTypePush,
		Ref:  "refs/heads/main",
	})
	gt.NoError(t, err)
}
