package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateKnowledgeEntryRequest struct {
	Category string `json:"category" validate:"required,oneof=FAQ DOCUMENTS RULES SOP"`
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	IsActive *bool  `json:"is_active"`
}

type UpdateKnowledgeEntryRequest struct {
	Id       uuid.UUID
	Category string `json:"category" validate:"required,oneof=FAQ DOCUMENTS RULES SOP"`
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	IsActive *bool  `json:"is_active"`
}

type KnowledgeEntryResponse struct {
	Id         uuid.UUID  `json:"id"`
	Category   string     `json:"category"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	IsActive   bool       `json:"is_active"`
	ChunkCount int64      `json:"chunk_count"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}
