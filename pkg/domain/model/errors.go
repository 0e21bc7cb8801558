package model

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrInvalidParameter is returned for out-of-range pagination arguments
	ErrInvalidParameter = goerr.New("invalid parameter")

	// ErrTaskNotFound is returned when no scan task has the requested ID
	ErrTaskNotFound = goerr.New("scan task not found")

	// ErrTaskPending is returned when a scan task has not finished yet
	ErrTaskPending = goerr.New("scan task is still running")

	// ErrTaskFailed is returned when a scan task ended with an error
	ErrTaskFailed = goerr.New("scan task failed")
)
