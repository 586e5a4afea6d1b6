package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Conversation struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WaId            string         `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerPhone   string         `gorm:"type:varchar(32);not null"`
	CustomerName    string         `gorm:"type:varchar(255)"`
	Status          string         `gorm:"type:varchar(32);not null;default:'AI_HANDLING';index"`
	Eligibility     string         `gorm:"type:varchar(32);not null;default:'PENDING'"`
	AiConfidence    *float64       `gorm:"type:double precision"`
	AssignedAgentId *uuid.UUID     `gorm:"type:uuid;index"`
	LastMessageAt   *time.Time
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Conversation) TableName() string {
	return "conversations"
}
