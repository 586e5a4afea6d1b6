package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rule is a mutable key/value eligibility parameter. Rules are read fresh
// (through a short-lived cache) on every scoring call so operator edits
// apply without a redeploy.
type Rule struct {
	Id        uuid.UUID
	RuleKey   string
	RuleValue string
	Label     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
