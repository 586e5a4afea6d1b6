package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is an ordered, immutable child of a Conversation.
type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	WaMessageId    string
	Direction      string // INBOUND | OUTBOUND
	Type           string // TEXT | IMAGE | DOCUMENT | AUDIO
	Content        string
	MediaId        string
	MediaType      string
	IsAiGenerated  bool
	Timestamp      time.Time
	CreatedAt      time.Time
}
