package entity

import (
	"time"

	"github.com/google/uuid"
)

// GovernmentEmployer is an approved Penjawat Awam employer the
// validate_government_staff tool matches against.
type GovernmentEmployer struct {
	Id         uuid.UUID
	Name       string
	Code       string
	Ministry   string
	Category   string // PERSEKUTUAN | NEGERI | PBT
	IsApproved bool
	CreatedAt  time.Time
}
