// Package queue defines message payloads exchanged over the message broker.
package queue

// WorkCompletedEvent is published when a moderator finishes their
// working set in a category.  It contains enough information for
// downstream consumers to log, notify, or trigger analytics without
// querying the primary database.
type WorkCompletedEvent struct {
	UserID        uint64   `json:"user_id"`
	UserEmail     string   `json:"user_email"`
	CategoryID    uint64   `json:"category_id"`
	CategoryTitle string   `json:"category_title"`
	AdvertIDs     []uint64 `json:"advert_ids"`
	CompletedAt   string   `json:"completed_at"`
}
