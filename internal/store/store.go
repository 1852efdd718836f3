// Package store provides durable persistence for user feedback records.
// Conversation state deliberately stays out of here; sessions are ephemeral
// by design.
package store

import (
	"context"
	"time"
)

// Feedback is one submitted feedback record.
type Feedback struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"sessionId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository persists feedback records.
type Repository interface {
	// SaveFeedback appends one record.
	SaveFeedback(ctx context.Context, fb Feedback) error

	// ListRecentFeedback returns up to limit records, newest first.
	ListRecentFeedback(ctx context.Context, limit int) ([]Feedback, error)

	// Ping verifies connectivity.
	Ping(ctx context.Context) error

	// Close closes the underlying database.
	Close() error
}
