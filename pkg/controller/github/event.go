// Package github converts GitHub webhook deliveries into domain events.
package github

import (
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/dirhook/pkg/domain/model"
)

// ParseEvent builds a WebhookEvent from the X-GitHub-Event header, the
// delivery id and the verified body. Only push payloads are decoded; other
// event types keep their name and raw payload.
func ParseEvent(eventType, deliveryID string, body []byte) (*model.WebhookEvent, error) {
	event := &model.WebhookEvent{
		ID:         deliveryID,
		Type:       model.WebhookEventType(eventType),
		ReceivedAt: time.Now(),
		RawPayload: body,
	}

	switch event.Type {
	case model.EventTypePush:
		payload, err := github.ParseWebHook(eventType, body)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid push payload", goerr.V("delivery_id", deliveryID))
		}
		push, ok := payload.(*github.PushEvent)
		if !ok {
			return nil, goerr.New("unexpected push payload type", goerr.V("delivery_id", deliveryID))
		}
		extractPushInfo(event, push)

	case "":
		event.Type = model.EventTypeUnknown
	}

	return event, nil
}

// extractPushInfo copies the fields used for branch matching and logging
func extractPushInfo(event *model.WebhookEvent, push *github.PushEvent) {
	event.Ref = push.GetRef()
	event.After = push.GetAfter()
	event.Repository = push.GetRepo().GetFullName()
	event.Sender = push.GetSender().GetLogin()
}
