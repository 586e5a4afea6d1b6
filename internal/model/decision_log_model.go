package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DecisionLog struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Intent         string         `gorm:"type:varchar(64)"`
	Confidence     float64        `gorm:"type:double precision"`
	RequiredAction string         `gorm:"type:varchar(64)"`
	ToolsCalled    datatypes.JSON `gorm:"type:jsonb"`
	RagContext     datatypes.JSON `gorm:"type:jsonb"`
	RawInput       string         `gorm:"type:text"`
	RawOutput      string         `gorm:"type:text"`
	OutputValid    bool           `gorm:"default:false"`
	RetryCount     int            `gorm:"default:0"`
	ProcessingMs   int64          `gorm:"default:0"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
}

func (DecisionLog) TableName() string {
	return "decision_logs"
}
