package model

import (
	"time"

	"github.com/google/uuid"
)

type Escalation struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID  `gorm:"type:uuid;not null;index"`
	Reason         string     `gorm:"type:varchar(64);not null"`
	Description    string     `gorm:"type:text"`
	Status         string     `gorm:"type:varchar(32);not null;default:'OPEN';index"`
	AssignedToId   *uuid.UUID `gorm:"type:uuid;index"`
	EscalatedById  *uuid.UUID `gorm:"type:uuid"`
	ResolvedAt     *time.Time
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`
}

func (Escalation) TableName() string {
	return "escalations"
}
