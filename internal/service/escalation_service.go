package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nurfahmi/Agentic-Wa/internal/constant"
	"github.com/nurfahmi/Agentic-Wa/internal/dto"
	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/mailer"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/specification"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/unitofwork"
	"github.com/nurfahmi/Agentic-Wa/internal/websocket"
	"github.com/nurfahmi/Agentic-Wa/pkg/events"
	pktNats "github.com/nurfahmi/Agentic-Wa/pkg/nats"

	"github.com/google/uuid"
)

type IEscalationService interface {
	// Escalate hands a conversation over to human agents. reasons is the
	// ordered trigger list; the first entry becomes the recorded reason.
	Escalate(ctx context.Context, conversationId uuid.UUID, reasons []string) (*entity.Escalation, error)
	List(ctx context.Context, status string) ([]*dto.EscalationResponse, error)
	Assign(ctx context.Context, escalationId, agentId uuid.UUID) error
	Resolve(ctx context.Context, escalationId uuid.UUID, note string) error
}

type escalationService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	emailService   mailer.IEmailService
	wsHub          *websocket.Hub
	logger         logger.ILogger
}

func NewEscalationService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	wsHub *websocket.Hub,
	log logger.ILogger,
) IEscalationService {
	return &escalationService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		emailService:   emailService,
		wsHub:          wsHub,
		logger:         log,
	}
}

func (s *escalationService) Escalate(ctx context.Context, conversationId uuid.UUID, reasons []string) (*entity.Escalation, error) {
	if len(reasons) == 0 {
		return nil, fmt.Errorf("escalation requires at least one reason")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fmt.Errorf("conversation %s not found", conversationId)
	}

	// One open escalation per conversation; a second trigger just
	// reuses it.
	open, err := uow.EscalationRepository().FindOne(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.ByStatus{Status: constant.EscalationStatusOpen},
	)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return open, nil
	}

	escalation := &entity.Escalation{
		Id:             uuid.New(),
		ConversationId: conversationId,
		Reason:         reasons[0],
		Description:    strings.Join(reasons, ","),
		Status:         constant.EscalationStatusOpen,
		CreatedAt:      time.Now(),
	}
	if err := uow.EscalationRepository().Create(ctx, escalation); err != nil {
		return nil, err
	}

	conversation.Status = constant.ConversationStatusEscalated
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return nil, err
	}

	s.notify(ctx, escalation, conversation)
	return escalation, nil
}

// notify fans the new escalation out to every channel agents watch.
// All of this is auxiliary; failures are logged and swallowed.
func (s *escalationService) notify(ctx context.Context, escalation *entity.Escalation, conversation *entity.Conversation) {
	if s.eventPublisher != nil {
		evt := events.NewEscalationCreated(escalation.Id.String(), conversation.Id.String(), escalation.Reason)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("escalation", "failed to publish escalation event", map[string]interface{}{
				"escalation_id": escalation.Id.String(),
				"error":         err.Error(),
			})
		}
	}

	if s.wsHub != nil {
		s.wsHub.Broadcast("escalation_created", dto.EscalationResponse{
			Id:             escalation.Id,
			ConversationId: escalation.ConversationId,
			Reason:         escalation.Reason,
			Status:         escalation.Status,
			CreatedAt:      escalation.CreatedAt,
		})
	}

	if s.emailService != nil {
		if err := s.emailService.SendEscalationAlert(conversation.Id.String(), conversation.CustomerPhone, escalation.Reason); err != nil {
			s.logger.Warn("escalation", "failed to send alert email", map[string]interface{}{
				"escalation_id": escalation.Id.String(),
				"error":         err.Error(),
			})
		}
	}
}

func (s *escalationService) List(ctx context.Context, status string) ([]*dto.EscalationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}

	escalations, err := uow.EscalationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.EscalationResponse, 0, len(escalations))
	for _, e := range escalations {
		out = append(out, &dto.EscalationResponse{
			Id:              e.Id,
			ConversationId:  e.ConversationId,
			Reason:          e.Reason,
			Status:          e.Status,
			AssignedAgentId: e.AssignedToId,
			CreatedAt:       e.CreatedAt,
			ResolvedAt:      e.ResolvedAt,
		})
	}
	return out, nil
}

func (s *escalationService) Assign(ctx context.Context, escalationId, agentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	escalation, err := uow.EscalationRepository().FindOne(ctx, specification.ByID{ID: escalationId})
	if err != nil {
		return err
	}
	if escalation == nil {
		return fmt.Errorf("escalation %s not found", escalationId)
	}

	escalation.AssignedToId = &agentId
	escalation.Status = constant.EscalationStatusInProgress
	if err := uow.EscalationRepository().Update(ctx, escalation); err != nil {
		return err
	}

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: escalation.ConversationId})
	if err != nil {
		return err
	}
	if conversation != nil {
		conversation.Status = constant.ConversationStatusAgentHandling
		conversation.AssignedAgentId = &agentId
		if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
			return err
		}
	}

	if s.eventPublisher != nil {
		evt := events.NewConversationAssigned(escalation.ConversationId.String(), escalation.Id.String(), agentId.String())
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("escalation", "failed to publish assignment event", map[string]interface{}{
				"escalation_id": escalation.Id.String(),
				"error":         err.Error(),
			})
		}
	}

	if s.wsHub != nil {
		s.wsHub.Send(agentId, "escalation_assigned", dto.EscalationResponse{
			Id:              escalation.Id,
			ConversationId:  escalation.ConversationId,
			Reason:          escalation.Reason,
			Status:          escalation.Status,
			AssignedAgentId: escalation.AssignedToId,
			CreatedAt:       escalation.CreatedAt,
		})
	}
	return nil
}

func (s *escalationService) Resolve(ctx context.Context, escalationId uuid.UUID, note string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	escalation, err := uow.EscalationRepository().FindOne(ctx, specification.ByID{ID: escalationId})
	if err != nil {
		return err
	}
	if escalation == nil {
		return fmt.Errorf("escalation %s not found", escalationId)
	}

	escalation.Status = constant.EscalationStatusResolved
	now := time.Now()
	escalation.ResolvedAt = &now
	if note != "" {
		escalation.Description = escalation.Description + " | " + note
	}
	if err := uow.EscalationRepository().Update(ctx, escalation); err != nil {
		return err
	}

	// The bot takes the conversation back once the agent is done.
	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: escalation.ConversationId})
	if err != nil {
		return err
	}
	if conversation != nil && conversation.Status != constant.ConversationStatusClosed {
		conversation.Status = constant.ConversationStatusAIHandling
		if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
			return err
		}
	}
	return nil
}
