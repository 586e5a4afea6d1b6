package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
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

type IWebhookService interface {
	// Verify answers the Graph API subscription handshake.
	Verify(mode, token, challenge string) (string, error)
	// ProcessInbound ingests one webhook delivery. It must return fast;
	// the actual agent turn runs on the queue.
	ProcessInbound(ctx context.Context, payload *dto.WebhookPayload) error
}

type webhookService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	waClient         *wa.Client
	verifyToken      string
	uploadDir        string
	logger           logger.ILogger
}

func NewWebhookService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	waClient *wa.Client,
	verifyToken string,
	uploadDir string,
	log logger.ILogger,
) IWebhookService {
	return &webhookService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		waClient:         waClient,
		verifyToken:      verifyToken,
		uploadDir:        uploadDir,
		logger:           log,
	}
}

func (s *webhookService) Verify(mode, token, challenge string) (string, error) {
	if mode == "subscribe" && token == s.verifyToken {
		return challenge, nil
	}
	return "", fmt.Errorf("webhook verification failed")
}

func (s *webhookService) ProcessInbound(ctx context.Context, payload *dto.WebhookPayload) error {
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}
			names := contactNames(change.Value.Contacts)
			for _, msg := range change.Value.Messages {
				if err := s.processMessage(ctx, &msg, names[msg.From]); err != nil {
					s.logger.Error("webhook", "failed to process inbound message", map[string]interface{}{
						"wa_message_id": msg.Id,
						"error":         err.Error(),
					})
					// Keep going; one bad message must not block the batch.
				}
			}
		}
	}
	return nil
}

func contactNames(contacts []dto.WebhookContact) map[string]string {
	names := make(map[string]string, len(contacts))
	for _, c := range contacts {
		names[c.WaId] = c.Profile.Name
	}
	return names
}

func (s *webhookService) processMessage(ctx context.Context, msg *dto.WebhookMessage, customerName string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Webhook deliveries can repeat; the wa_message_id makes ingestion
	// idempotent.
	existing, err := uow.MessageRepository().FindOne(ctx, specification.Filter("wa_message_id", msg.Id))
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	conversation, err := s.findOrCreateConversation(ctx, uow, msg.From, customerName)
	if err != nil {
		return err
	}

	message, err := s.storeMessage(ctx, uow, conversation, msg)
	if err != nil {
		return err
	}

	now := time.Now()
	conversation.LastMessageAt = &now
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		s.logger.Warn("webhook", "failed to touch conversation", map[string]interface{}{
			"conversation_id": conversation.Id.String(),
			"error":           err.Error(),
		})
	}

	if err := s.waClient.MarkAsRead(ctx, msg.Id); err != nil {
		s.logger.Warn("webhook", "failed to mark message read", map[string]interface{}{
			"wa_message_id": msg.Id,
			"error":         err.Error(),
		})
	}

	// Only queue a turn while the bot is in charge. Agent-handled and
	// escalated conversations still record messages for the dashboard.
	if conversation.Status != constant.ConversationStatusAIHandling {
		return nil
	}

	job := dto.PublishInboundMessage{
		ConversationId: conversation.Id,
		MessageId:      message.Id,
	}
	jobJson, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, jobJson)
}

func (s *webhookService) findOrCreateConversation(ctx context.Context, uow unitofwork.UnitOfWork, waId, customerName string) (*entity.Conversation, error) {
	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByWaID{WaID: waId})
	if err != nil {
		return nil, err
	}
	if conversation != nil {
		if customerName != "" && conversation.CustomerName != customerName {
			conversation.CustomerName = customerName
			if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
				return nil, err
			}
		}
		return conversation, nil
	}

	conversation = &entity.Conversation{
		Id:            uuid.New(),
		WaId:          waId,
		CustomerPhone: waId,
		CustomerName:  customerName,
		Status:        constant.ConversationStatusAIHandling,
		Eligibility:   constant.EligibilityPending,
		CreatedAt:     time.Now(),
	}
	if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

func (s *webhookService) storeMessage(ctx context.Context, uow unitofwork.UnitOfWork, conversation *entity.Conversation, msg *dto.WebhookMessage) (*entity.Message, error) {
	message := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		WaMessageId:    msg.Id,
		Direction:      constant.MessageDirectionInbound,
		Timestamp:      parseWaTimestamp(msg.Timestamp),
	}

	switch msg.Type {
	case "text":
		message.Type = constant.MessageTypeText
		if msg.Text != nil {
			message.Content = msg.Text.Body
		}
	case "image", "document":
		media := msg.Image
		message.Type = constant.MessageTypeImage
		if msg.Type == "document" {
			media = msg.Document
			message.Type = constant.MessageTypeDocument
		}
		if media == nil {
			return nil, fmt.Errorf("media message %s without media body", msg.Id)
		}
		message.MediaId = media.Id
		message.MediaType = media.MimeType
		message.Content = media.Caption
		if message.Content == "" {
			message.Content = "Pelanggan memuat naik dokumen."
		}

		if doc, err := s.storeDocument(ctx, uow, conversation, media); err != nil {
			s.logger.Warn("webhook", "failed to store media document", map[string]interface{}{
				"media_id": media.Id,
				"error":    err.Error(),
			})
		} else {
			message.Content = fmt.Sprintf("%s (document_id: %s)", message.Content, doc.Id)
		}
	case "audio":
		message.Type = constant.MessageTypeAudio
		message.Content = "Pelanggan menghantar mesej suara."
	default:
		message.Type = constant.MessageTypeText
		message.Content = fmt.Sprintf("Mesej jenis %s tidak disokong.", msg.Type)
	}

	if err := uow.MessageRepository().Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// storeDocument downloads the media and records it for OCR.
func (s *webhookService) storeDocument(ctx context.Context, uow unitofwork.UnitOfWork, conversation *entity.Conversation, media *dto.MediaBody) (*entity.Document, error) {
	data, mimeType, err := s.waClient.DownloadMedia(ctx, media.Id)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, err
	}

	docId := uuid.New()
	filePath := filepath.Join(s.uploadDir, docId.String()+extensionFor(mimeType))
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return nil, err
	}

	doc := &entity.Document{
		Id:             docId,
		ConversationId: conversation.Id,
		FilePath:       filePath,
		MimeType:       mimeType,
		OcrStatus:      constant.OcrStatusPending,
		CreatedAt:      time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func extensionFor(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "jpeg"), strings.Contains(mimeType, "jpg"):
		return ".jpg"
	case strings.Contains(mimeType, "png"):
		return ".png"
	case strings.Contains(mimeType, "pdf"):
		return ".pdf"
	default:
		return ".bin"
	}
}

func parseWaTimestamp(ts string) time.Time {
	if unix, err := strconv.ParseInt(ts, 10, 64); err == nil {
		return time.Unix(unix, 0)
	}
	return time.Now()
}
