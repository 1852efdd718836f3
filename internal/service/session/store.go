// Package session owns per-conversation state: the bounded history window
// and the aggregate counters that feed prompt context and analytics.
package session

import (
	"context"
	"errors"

	"github.com/myrecovery365/sobrio/backend/internal/model/chat"
)

var ErrSessionNotFound = errors.New("session not found")

// Stats is an aggregate snapshot across all live sessions.
type Stats struct {
	ActiveSessions int            `json:"active_sessions"`
	TotalMessages  int            `json:"total_messages"`
	TopicCounts    map[string]int `json:"topic_counts"`
}

// Store abstracts session state so request handlers never touch a global
// map. The in-memory implementation backs tests and single-process
// deployments; a key-value backed implementation can be swapped in without
// touching the turn pipeline.
//
// Callers may process turns for different sessions concurrently, but turns
// within one session are expected to arrive strictly sequentially.
type Store interface {
	// GetOrCreate returns a copy of the session, creating it on first use.
	GetOrCreate(ctx context.Context, id string) (chat.Session, error)

	// RecordMessage bumps the message counter and activity timestamp.
	// Every valid turn records a message, including crisis turns that
	// never reach the history window.
	RecordMessage(ctx context.Context, id string) error

	// RecordTurn appends a completed exchange to the history window,
	// evicting the oldest turn once the window is full.
	RecordTurn(ctx context.Context, id, userText, assistantText string) error

	// RecordTopics appends detected topic labels in arrival order.
	RecordTopics(ctx context.Context, id string, topics []string) error

	// Clear drops the session entirely.
	Clear(ctx context.Context, id string) error

	// Stats reports aggregate counts across live sessions.
	Stats(ctx context.Context) (Stats, error)

	// Close releases background resources such as the eviction sweeper.
	Close() error
}
