package store

import (
	"context"
	"time"
)

// ConversationState is the ephemeral per-conversation memory the agent
// keeps between turns. Losing it is acceptable; the durable record lives
// in Postgres.
type ConversationState struct {
	Stage          string    `json:"stage"` // "GREETING" | "COLLECTING_INFO" | "AWAITING_DOCUMENT" | "DECIDED"
	LastIntent     string    `json:"last_intent"`
	LastConfidence float64   `json:"last_confidence"`
	PendingFields  []string  `json:"pending_fields,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

const (
	StageGreeting         = "GREETING"
	StageCollectingInfo   = "COLLECTING_INFO"
	StageAwaitingDocument = "AWAITING_DOCUMENT"
	StageDecided          = "DECIDED"
)

// StateStore reads and writes conversation state keyed by conversation id.
type StateStore interface {
	// Get returns the stored state, or an empty state when none exists
	// or the backend is unavailable.
	Get(ctx context.Context, conversationID string) (ConversationState, error)
	Set(ctx context.Context, conversationID string, state ConversationState) error
	Delete(ctx context.Context, conversationID string) error
}
