package model

import (
	"time"

	"github.com/google/uuid"
)

// Messages are append-only; no soft delete column on purpose.
type Message struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID `gorm:"type:uuid;not null;index"`
	WaMessageId    string    `gorm:"type:varchar(128);index"`
	Direction      string    `gorm:"type:varchar(16);not null"`
	Type           string    `gorm:"type:varchar(16);not null;default:'TEXT'"`
	Content        string    `gorm:"type:text"`
	MediaId        string    `gorm:"type:varchar(255)"`
	MediaType      string    `gorm:"type:varchar(128)"`
	IsAiGenerated  bool      `gorm:"default:false"`
	Timestamp      time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (Message) TableName() string {
	return "messages"
}
