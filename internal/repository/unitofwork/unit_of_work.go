package unitofwork

import (
	"context"

	"github.com/nurfahmi/Agentic-Wa/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository
	DecisionLogRepository() contract.DecisionLogRepository
	KnowledgeRepository() contract.KnowledgeRepository
	KnowledgeChunkRepository() contract.KnowledgeChunkRepository
	RuleRepository() contract.RuleRepository
	EscalationRepository() contract.EscalationRepository
	DocumentRepository() contract.DocumentRepository
	EmployerRepository() contract.EmployerRepository
	UserRepository() contract.UserRepository
}
