package model

import (
	"time"

	"github.com/google/uuid"
)

type KoperasiRule struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RuleKey   string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	RuleValue string    `gorm:"type:varchar(255);not null"`
	Label     string    `gorm:"type:varchar(255)"`
	IsActive  bool      `gorm:"default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (KoperasiRule) TableName() string {
	return "koperasi_rules"
}
