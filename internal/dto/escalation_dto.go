package dto

import (
	"time"

	"github.com/google/uuid"
)

type EscalationResponse struct {
	Id              uuid.UUID  `json:"id"`
	ConversationId  uuid.UUID  `json:"conversation_id"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	AssignedAgentId *uuid.UUID `json:"assigned_agent_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
}

type ResolveEscalationRequest struct {
	Note string `json:"note"`
}

type AssignEscalationRequest struct {
	// AgentId defaults to the authenticated agent when omitted.
	AgentId uuid.UUID `json:"agent_id"`
}
