package model

import "time"

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypePush    WebhookEventType = "push"
	EventTypePing    WebhookEventType = "ping"
	EventTypeUnknown WebhookEventType = "unknown"
)

// WebhookEvent represents a webhook event received from GitHub
type WebhookEvent struct {
	ID         string           // Retrieved from X-GitHub-Delivery header
	Type       WebhookEventType // Retrieved from X-GitHub-Event header
	Ref        string           // Pushed ref, e.g. refs/heads/main
	After      string           // Commit SHA after the push
	Repository string           // Repository full name
	Sender     string           // Sender username
	ReceivedAt time.Time        // Time when the event was received
	RawPayload []byte           // Raw JSON payload
}

// BranchRef returns the fully qualified ref of a branch
func BranchRef(branch string) string {
	return "refs/heads/" + branch
}

// IsPushTo checks if the event is a push to the given branch
func (e *WebhookEvent) IsPushTo(branch string) bool {
	return e.Type == EventTypePush && e.Ref == BranchRef(branch)
}

// SyncResult is the outcome of one sync script run
type SyncResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}
