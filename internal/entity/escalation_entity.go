package entity

import (
	"time"

	"github.com/google/uuid"
)

// Escalation records a handoff from automated handling to a human agent.
// Reason is the primary (first-matched) code; Description carries the full
// matched set.
type Escalation struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Reason         string
	Description    string
	Status         string // OPEN | IN_PROGRESS | RESOLVED
	AssignedToId   *uuid.UUID
	EscalatedById  *uuid.UUID
	ResolvedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
