package domain

import "time"

// SyncStats holds statistics about a sync operation.
type SyncStats struct {
	Kind      Kind
	Fetched   int
	New       int
	Updated   int
	Dropped   int
	Persisted bool
	Duration  time.Duration
}

// NotifyStats holds statistics about one notifier pass.
type NotifyStats struct {
	Kind      Kind
	Pending   int
	Created   int
	Errors    int
	MarkFails int
}
