package storage

import "time"

// EventRecord is one row of the event log.
type EventRecord struct {
	ID        int64
	UserID    string
	Kind      string
	Message   string
	CreatedAt time.Time
}
