package entity

import (
	"time"

	"github.com/google/uuid"
)

// Decision is the structured, validated output of one orchestrator turn.
// The json tags are the wire schema the model is instructed to produce.
type Decision struct {
	Intent            string   `json:"intent"`
	Confidence        float64  `json:"confidence"`
	RequiredAction    string   `json:"required_action"`
	EligibilityStatus string   `json:"eligibility_status"`
	Reason            string   `json:"reason"`
	Escalate          bool     `json:"escalate"`
	ReplyText         string   `json:"reply_text"`
	ToolsUsed         []string `json:"tools_used,omitempty"`
}

// DecisionLog is the append-only audit record of a turn. It is written on
// every turn, success or failure, including retry count and latency.
type DecisionLog struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Intent         string
	Confidence     float64
	RequiredAction string
	ToolsCalled    []string
	RagContext     []RetrievedChunk
	RawInput       string
	RawOutput      string
	OutputValid    bool
	RetryCount     int
	ProcessingMs   int64
	CreatedAt      time.Time
}

// RetrievedChunk is one ranked retrieval result, as recorded in the
// decision log and injected into the prompt.
type RetrievedChunk struct {
	ChunkId  uuid.UUID `json:"chunk_id"`
	EntryId  uuid.UUID `json:"entry_id"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Content  string    `json:"content"`
	Score    float64   `json:"score"`
}
