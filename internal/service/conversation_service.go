package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nurfahmi/Agentic-Wa/internal/constant"
	"github.com/nurfahmi/Agentic-Wa/internal/dto"
	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/specification"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/unitofwork"
	"github.com/nurfahmi/Agentic-Wa/pkg/wa"

	"github.com/google/uuid"
)

type IConversationService interface {
	List(ctx context.Context, req *dto.ListConversationsRequest) ([]*dto.ConversationResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ConversationDetailResponse, error)
	DecisionLogs(ctx context.Context, id uuid.UUID) ([]*dto.DecisionLogResponse, error)
	// Reply sends a manual agent message on a conversation under human
	// control.
	Reply(ctx context.Context, id uuid.UUID, agentId uuid.UUID, req *dto.AgentReplyRequest) error
	// Takeover moves the conversation from the bot to an agent.
	Takeover(ctx context.Context, id uuid.UUID, agentId uuid.UUID) error
	Close(ctx context.Context, id uuid.UUID) error
}

type conversationService struct {
	uowFactory unitofwork.RepositoryFactory
	waClient   *wa.Client
	logger     logger.ILogger
}

func NewConversationService(uowFactory unitofwork.RepositoryFactory, waClient *wa.Client, log logger.ILogger) IConversationService {
	return &conversationService{
		uowFactory: uowFactory,
		waClient:   waClient,
		logger:     log,
	}
}

func (s *conversationService) List(ctx context.Context, req *dto.ListConversationsRequest) ([]*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "last_message_at", Desc: true},
	}
	if req.Status != "" {
		specs = append(specs, specification.ByStatus{Status: req.Status})
	}
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	specs = append(specs, specification.Pagination{Limit: limit, Offset: req.Offset})

	conversations, err := uow.ConversationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		out = append(out, toConversationResponse(c))
	}
	return out, nil
}

func (s *conversationService) Show(ctx context.Context, id uuid.UUID) (*dto.ConversationDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, nil
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: id},
		specification.OrderBy{Field: "timestamp"},
	)
	if err != nil {
		return nil, err
	}

	detail := &dto.ConversationDetailResponse{
		Conversation: *toConversationResponse(conversation),
		Messages:     make([]dto.MessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		detail.Messages = append(detail.Messages, dto.MessageResponse{
			Id:            m.Id,
			Direction:     m.Direction,
			Type:          m.Type,
			Content:       m.Content,
			IsAiGenerated: m.IsAiGenerated,
			Timestamp:     m.Timestamp,
		})
	}
	return detail, nil
}

func (s *conversationService) DecisionLogs(ctx context.Context, id uuid.UUID) ([]*dto.DecisionLogResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	logs, err := uow.DecisionLogRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: id},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.DecisionLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, &dto.DecisionLogResponse{
			Id:             l.Id,
			Intent:         l.Intent,
			Confidence:     l.Confidence,
			RequiredAction: l.RequiredAction,
			ToolsCalled:    l.ToolsCalled,
			OutputValid:    l.OutputValid,
			RetryCount:     l.RetryCount,
			ProcessingMs:   l.ProcessingMs,
			CreatedAt:      l.CreatedAt,
		})
	}
	return out, nil
}

func (s *conversationService) Reply(ctx context.Context, id uuid.UUID, agentId uuid.UUID, req *dto.AgentReplyRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if conversation == nil {
		return fmt.Errorf("conversation %s not found", id)
	}
	if conversation.Status != constant.ConversationStatusAgentHandling {
		return fmt.Errorf("conversation %s is not under agent control", id)
	}

	if err := s.waClient.SendText(ctx, conversation.WaId, req.Content); err != nil {
		return err
	}

	outbound := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Direction:      constant.MessageDirectionOutbound,
		Type:           constant.MessageTypeText,
		Content:        req.Content,
		IsAiGenerated:  false,
		Timestamp:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, outbound); err != nil {
		return err
	}

	now := time.Now()
	conversation.LastMessageAt = &now
	return uow.ConversationRepository().Update(ctx, conversation)
}

func (s *conversationService) Takeover(ctx context.Context, id uuid.UUID, agentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if conversation == nil {
		return fmt.Errorf("conversation %s not found", id)
	}

	conversation.Status = constant.ConversationStatusAgentHandling
	conversation.AssignedAgentId = &agentId
	return uow.ConversationRepository().Update(ctx, conversation)
}

func (s *conversationService) Close(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if conversation == nil {
		return fmt.Errorf("conversation %s not found", id)
	}

	conversation.Status = constant.ConversationStatusClosed
	return uow.ConversationRepository().Update(ctx, conversation)
}

func toConversationResponse(c *entity.Conversation) *dto.ConversationResponse {
	return &dto.ConversationResponse{
		Id:            c.Id,
		WaId:          c.WaId,
		CustomerPhone: c.CustomerPhone,
		CustomerName:  c.CustomerName,
		Status:        c.Status,
		Eligibility:   c.Eligibility,
		AiConfidence:  c.AiConfidence,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
	}
}
