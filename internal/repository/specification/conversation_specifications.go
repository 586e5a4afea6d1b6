package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByWaID filters conversations by their stable WhatsApp channel id
type ByWaID struct {
	WaID string
}

func (s ByWaID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("wa_id = ?", s.WaID)
}

// ByConversationID filters child records by parent conversation
type ByConversationID struct {
	ConversationID uuid.UUID
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

// ByStatus filters by lifecycle status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByEntryID filters knowledge chunks by parent entry
type ByEntryID struct {
	EntryID uuid.UUID
}

func (s ByEntryID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("entry_id = ?", s.EntryID)
}

// ByRuleKey filters rules by key
type ByRuleKey struct {
	RuleKey string
}

func (s ByRuleKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("rule_key = ?", s.RuleKey)
}

// ByEmail filters users by email
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}
