package dto

import (
	"time"

	"github.com/google/uuid"
)

type ConversationResponse struct {
	Id            uuid.UUID  `json:"id"`
	WaId          string     `json:"wa_id"`
	CustomerPhone string     `json:"customer_phone"`
	CustomerName  string     `json:"customer_name"`
	Status        string     `json:"status"`
	Eligibility   string     `json:"eligibility"`
	AiConfidence  *float64   `json:"ai_confidence,omitempty"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type MessageResponse struct {
	Id            uuid.UUID `json:"id"`
	Direction     string    `json:"direction"`
	Type          string    `json:"type"`
	Content       string    `json:"content"`
	IsAiGenerated bool      `json:"is_ai_generated"`
	Timestamp     time.Time `json:"timestamp"`
}

type ConversationDetailResponse struct {
	Conversation ConversationResponse `json:"conversation"`
	Messages     []MessageResponse    `json:"messages"`
}

type ListConversationsRequest struct {
	Status string `query:"status"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// AgentReplyRequest is a manual agent reply on a taken-over conversation.
type AgentReplyRequest struct {
	Content string `json:"content" validate:"required"`
}

type AssignAgentRequest struct {
	AgentId uuid.UUID `json:"agent_id" validate:"required"`
}

type CloseConversationRequest struct {
	Note string `json:"note"`
}

type DecisionLogResponse struct {
	Id             uuid.UUID `json:"id"`
	Intent         string    `json:"intent"`
	Confidence     float64   `json:"confidence"`
	RequiredAction string    `json:"required_action"`
	ToolsCalled    []string  `json:"tools_called"`
	OutputValid    bool      `json:"output_valid"`
	RetryCount     int       `json:"retry_count"`
	ProcessingMs   int64     `json:"processing_ms"`
	CreatedAt      time.Time `json:"created_at"`
}
