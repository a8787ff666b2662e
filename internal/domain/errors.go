package domain

import "errors"

var (
	// ErrProviderUnavailable means a provider call failed or timed out. It is
	// never reported as an empty batch.
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrPersistence         = errors.New("persistence failure")
	ErrNotification        = errors.New("notification failure")
	ErrNotFound            = errors.New("not found")
	ErrUnknownKind         = errors.New("unknown content kind")
)
