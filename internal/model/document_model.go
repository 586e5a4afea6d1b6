package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Document struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID      `gorm:"type:uuid;not null;index"`
	FilePath       string         `gorm:"type:varchar(512);not null"`
	MimeType       string         `gorm:"type:varchar(128)"`
	OcrStatus      string         `gorm:"type:varchar(32);not null;default:'PENDING'"`
	OcrResult      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}
