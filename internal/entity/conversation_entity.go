package entity

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is the aggregate root for one WhatsApp thread. Messages,
// decisions and escalations hang off it; the orchestrator mutates it once
// per processed turn.
type Conversation struct {
	Id              uuid.UUID
	WaId            string // stable WhatsApp channel id
	CustomerPhone   string
	CustomerName    string
	Status          string // AI_HANDLING | AGENT_HANDLING | ESCALATED | CLOSED
	Eligibility     string // PENDING | PRE_ELIGIBLE | NOT_ELIGIBLE | REQUIRES_REVIEW
	AiConfidence    *float64
	AssignedAgentId *uuid.UUID
	LastMessageAt   *time.Time
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
