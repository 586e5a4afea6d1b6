package model

import (
	"time"

	"github.com/google/uuid"
)

type GovernmentEmployer struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"type:varchar(255);not null;index"`
	Code       string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Ministry   string    `gorm:"type:varchar(64)"`
	Category   string    `gorm:"type:varchar(32)"`
	IsApproved bool      `gorm:"default:true;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (GovernmentEmployer) TableName() string {
	return "government_employers"
}
