package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ESCALATION_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes published on the bus.
const (
	TypeEscalationCreated    = "ESCALATION_CREATED"
	TypeDecisionLogged       = "DECISION_LOGGED"
	TypeDocumentProcessed    = "DOCUMENT_PROCESSED"
	TypeConversationAssigned = "CONVERSATION_ASSIGNED"
)

// NewEscalationCreated builds the event emitted when a conversation is
// handed off to a human agent.
func NewEscalationCreated(escalationID, conversationID, reason string) Event {
	return BaseEvent{
		Type: TypeEscalationCreated,
		Data: map[string]interface{}{
			"escalation_id":   escalationID,
			"conversation_id": conversationID,
			"reason":          reason,
		},
		OccurredAt: time.Now(),
	}
}

// NewDecisionLogged builds the event emitted after every completed agent turn.
func NewDecisionLogged(conversationID, intent string, confidence float64, escalate bool) Event {
	return BaseEvent{
		Type: TypeDecisionLogged,
		Data: map[string]interface{}{
			"conversation_id": conversationID,
			"intent":          intent,
			"confidence":      confidence,
			"escalate":        escalate,
		},
		OccurredAt: time.Now(),
	}
}

// NewConversationAssigned builds the event emitted when an escalated
// conversation is assigned to an agent.
func NewConversationAssigned(conversationID, escalationID, agentID string) Event {
	return BaseEvent{
		Type: TypeConversationAssigned,
		Data: map[string]interface{}{
			"conversation_id": conversationID,
			"escalation_id":   escalationID,
			"agent_id":        agentID,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentProcessed builds the event emitted when OCR on an uploaded
// document finishes, successfully or not.
func NewDocumentProcessed(documentID, conversationID, status string) Event {
	return BaseEvent{
		Type: TypeDocumentProcessed,
		Data: map[string]interface{}{
			"document_id":     documentID,
			"conversation_id": conversationID,
			"status":          status,
		},
		OccurredAt: time.Now(),
	}
}
