package services

import "errors"

// Sentinel errors controllers map onto HTTP statuses. Validation and
// not-found are non-retryable; a sync failure is the retryable class.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("record not found or not owned")
	ErrNotConnected = errors.New("fitness provider not connected")
	ErrProviderAuth = errors.New("provider credential rejected")
	ErrSyncFailed   = errors.New("step sync failed")
)
