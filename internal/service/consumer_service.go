package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nurfahmi/Agentic-Wa/internal/constant"
	"github.com/nurfahmi/Agentic-Wa/internal/dto"
	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/specification"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/unitofwork"
	"github.com/nurfahmi/Agentic-Wa/pkg/ai"
	"github.com/nurfahmi/Agentic-Wa/pkg/events"
	pktNats "github.com/nurfahmi/Agentic-Wa/pkg/nats"
	"github.com/nurfahmi/Agentic-Wa/pkg/wa"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService is the turn worker: it drains inbound message jobs,
// runs the agent pipeline and delivers the reply.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	orchestrator      *ai.Orchestrator
	waClient          *wa.Client
	escalationService IEscalationService
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	orchestrator *ai.Orchestrator,
	waClient *wa.Client,
	escalationService IEscalationService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		orchestrator:      orchestrator,
		waClient:          waClient,
		escalationService: escalationService,
		eventPublisher:    eventPublisher,
		logger:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishInboundMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal turn job", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: payload.ConversationId})
	if err != nil {
		cs.logger.Error("consumer", "failed to load conversation", map[string]interface{}{
			"conversation_id": payload.ConversationId.String(),
			"error":           err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}
	if conversation == nil {
		msg.Ack()
		return
	}

	inbound, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: payload.MessageId})
	if err != nil {
		msg.Nack()
		return
	}
	if inbound == nil {
		msg.Ack()
		return
	}

	// The customer may have asked for an agent while this job was
	// queued; the bot must not answer over a human.
	if conversation.Status != constant.ConversationStatusAIHandling {
		msg.Ack()
		return
	}

	result := cs.orchestrator.ProcessTurn(ctx, conversation, inbound)

	if err := cs.waClient.SendText(ctx, conversation.WaId, result.Reply); err != nil {
		cs.logger.Error("consumer", "failed to send reply", map[string]interface{}{
			"conversation_id": conversation.Id.String(),
			"error":           err.Error(),
		})
		// The turn already happened and was logged; do not re-run it.
	}

	cs.storeReply(ctx, uow, conversation, result)
	cs.updateConversation(ctx, uow, conversation, result)

	if result.Escalate {
		if _, err := cs.escalationService.Escalate(ctx, conversation.Id, result.EscalationReasons); err != nil {
			cs.logger.Error("consumer", "failed to create escalation", map[string]interface{}{
				"conversation_id": conversation.Id.String(),
				"error":           err.Error(),
			})
		}
	}

	cs.publishDecisionEvent(ctx, conversation, result)
	msg.Ack()
}

func (cs *consumerService) storeReply(ctx context.Context, uow unitofwork.UnitOfWork, conversation *entity.Conversation, result *ai.TurnResult) {
	outbound := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Direction:      constant.MessageDirectionOutbound,
		Type:           constant.MessageTypeText,
		Content:        result.Reply,
		IsAiGenerated:  true,
		Timestamp:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, outbound); err != nil {
		cs.logger.Error("consumer", "failed to store outbound message", map[string]interface{}{
			"conversation_id": conversation.Id.String(),
			"error":           err.Error(),
		})
	}
}

func (cs *consumerService) updateConversation(ctx context.Context, uow unitofwork.UnitOfWork, conversation *entity.Conversation, result *ai.TurnResult) {
	now := time.Now()
	conversation.LastMessageAt = &now

	if result.Decision != nil {
		confidence := result.Decision.Confidence
		conversation.AiConfidence = &confidence

		// PENDING never overwrites an already-decided status.
		if result.Decision.EligibilityStatus != constant.EligibilityPending {
			conversation.Eligibility = result.Decision.EligibilityStatus
		}
	}

	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		cs.logger.Error("consumer", "failed to update conversation", map[string]interface{}{
			"conversation_id": conversation.Id.String(),
			"error":           err.Error(),
		})
	}
}

func (cs *consumerService) publishDecisionEvent(ctx context.Context, conversation *entity.Conversation, result *ai.TurnResult) {
	if cs.eventPublisher == nil {
		return
	}

	intent := ""
	confidence := 0.0
	if result.Decision != nil {
		intent = result.Decision.Intent
		confidence = result.Decision.Confidence
	}
	evt := events.NewDecisionLogged(conversation.Id.String(), intent, confidence, result.Escalate)
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		cs.logger.Warn("consumer", "failed to publish decision event", map[string]interface{}{
			"conversation_id": conversation.Id.String(),
			"error":           err.Error(),
		})
	}
}
