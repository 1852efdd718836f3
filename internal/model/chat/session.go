package chat

import "time"

// Turn is one completed exchange: what the user said and what we answered.
type Turn struct {
	UserText      string    `json:"userText"`
	AssistantText string    `json:"assistantText"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Session captures a transient anonymous conversation and its aggregates.
// History is a sliding window of the most recent turns; Topics keeps every
// recorded label in insertion order so the context composer can pick the
// most recent ones without re-sorting.
type Session struct {
	ID           string    `json:"id"`
	History      []Turn    `json:"history"`
	MessageCount int       `json:"messageCount"`
	Topics       []string  `json:"topics"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActiveAt time.Time `json:"lastActiveAt"`
}
