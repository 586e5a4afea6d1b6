package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpsertRuleRequest struct {
	RuleKey   string `json:"rule_key" validate:"required"`
	RuleValue string `json:"rule_value" validate:"required"`
	Label     string `json:"label"`
	IsActive  *bool  `json:"is_active"`
}

type RuleResponse struct {
	Id        uuid.UUID  `json:"id"`
	RuleKey   string     `json:"rule_key"`
	RuleValue string     `json:"rule_value"`
	Label     string     `json:"label"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
