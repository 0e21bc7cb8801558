package model

import "time"

// ScanStatus is the lifecycle state of a background scan
type ScanStatus string

const (
	ScanStatusPending   ScanStatus = "pending"
	ScanStatusSucceeded ScanStatus = "succeeded"
	ScanStatusFailed    ScanStatus = "failed"
)

// ScanStatusStarted is reported to the caller right after a scan is scheduled
const ScanStatusStarted = "started"

// ScanTask is one background walk of the project root. It leaves the pending
// state exactly once.
type ScanTask struct {
	ID          string
	Status      ScanStatus
	Snapshot    *Snapshot
	Error       string
	CreatedAt   time.Time
	CompletedAt time.Time
}

// IsDone reports whether the task has left the pending state
func (t *ScanTask) IsDone() bool {
	return t.Status == ScanStatusSucceeded || t.Status == ScanStatusFailed
}
