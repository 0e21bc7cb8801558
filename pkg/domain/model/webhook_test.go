package model_test

import (
	"testing"

	"github.com/m-mizutani/dirhook/pkg/domain/model"
)

func TestWebhookEvent_IsPushTo(t *testing.T) {
	tests := []struct {
		name     string
		event    *model.WebhookEvent
		branch   string
		expected bool
	}{
		{
			name: "Push to configured branch",
			event: &model.WebhookEvent{
				Type: model.EventTypePush,
				Ref:  "refs/heads/main",
			},
			branch:   "main",
			expected: true,
		},
		{
			name: "Push to another branch",
			event: &model.WebhookEvent{
				Type: model.EventTypePush,
				Ref:  "refs/heads/feature",
			},
			branch:   "main",
			expected: false,
		},
		{
			name: "Push of a tag with the branch name",
			event: &model.WebhookEvent{
				Type: model.EventTypePush,
				Ref:  "refs/tags/main",
			},
			branch:   "main",
			expected: false,
		},
		{
			name: "Branch name is a prefix of the ref",
			event: &model.WebhookEvent{
				Type: model.EventTypePush,
				Ref:  "refs/heads/main-next",
			},
			branch:   "main",
			expected: false,
		},
		{
			name: "Ping event",
			event: &model.WebhookEvent{
				Type: model.EventTypePing,
				Ref:  "refs/heads/main",
			},
			branch:   "main",
			expected: false,
		},
		{
			name: "Different event type",
			event: &model.WebhookEvent{
				Type: model.WebhookEventType("issues"),
				Ref:  "refs/heads/main",
			},
			branch:   "main",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.event.IsPushTo(tt.branch)
			if got != tt.expected {
				t.Errorf("IsPushTo() = %v, want %v", got, tt.expected)
			}
		})
	}
}
