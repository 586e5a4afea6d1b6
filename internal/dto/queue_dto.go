package dto

import "github.com/google/uuid"

// PublishInboundMessage is the job payload for one agent turn.
type PublishInboundMessage struct {
	ConversationId uuid.UUID `json:"conversation_id"`
	MessageId      uuid.UUID `json:"message_id"`
}

// PublishIndexEntry is the job payload for (re)indexing one knowledge
// entry.
type PublishIndexEntry struct {
	EntryId uuid.UUID `json:"entry_id"`
}
