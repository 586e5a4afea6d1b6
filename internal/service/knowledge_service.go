package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nurfahmi/Agentic-Wa/internal/dto"
	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/specification"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/unitofwork"
	"github.com/nurfahmi/Agentic-Wa/pkg/rag"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IKnowledgeService interface {
	Create(ctx context.Context, req *dto.CreateKnowledgeEntryRequest) (*dto.KnowledgeEntryResponse, error)
	Update(ctx context.Context, req *dto.UpdateKnowledgeEntryRequest) (*dto.KnowledgeEntryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Show(ctx context.Context, id uuid.UUID) (*dto.KnowledgeEntryResponse, error)
	List(ctx context.Context, category string) ([]*dto.KnowledgeEntryResponse, error)
	// ConsumeIndexJobs drains the re-index queue in the background.
	ConsumeIndexJobs(ctx context.Context) error
}

type knowledgeService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	indexer          *rag.Indexer
	pubSub           *gochannel.GoChannel
	indexTopic       string
	logger           logger.ILogger
}

func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	indexer *rag.Indexer,
	pubSub *gochannel.GoChannel,
	indexTopic string,
	log logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		indexer:          indexer,
		pubSub:           pubSub,
		indexTopic:       indexTopic,
		logger:           log,
	}
}

func (s *knowledgeService) Create(ctx context.Context, req *dto.CreateKnowledgeEntryRequest) (*dto.KnowledgeEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry := &entity.KnowledgeEntry{
		Id:        uuid.New(),
		Category:  req.Category,
		Title:     req.Title,
		Content:   req.Content,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}

	if err := uow.KnowledgeRepository().Create(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.publishIndexJob(ctx, entry.Id); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, uow, entry), nil
}

func (s *knowledgeService) Update(ctx context.Context, req *dto.UpdateKnowledgeEntryRequest) (*dto.KnowledgeEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry, err := uow.KnowledgeRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("knowledge entry %s not found", req.Id)
	}

	entry.Category = req.Category
	entry.Title = req.Title
	entry.Content = req.Content
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}

	if err := uow.KnowledgeRepository().Update(ctx, entry); err != nil {
		return nil, err
	}

	// Content changed; chunks are stale until the re-index job runs.
	if err := s.publishIndexJob(ctx, entry.Id); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, uow, entry), nil
}

func (s *knowledgeService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.KnowledgeRepository().Delete(ctx, id)
}

func (s *knowledgeService) Show(ctx context.Context, id uuid.UUID) (*dto.KnowledgeEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry, err := uow.KnowledgeRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	return s.toResponse(ctx, uow, entry), nil
}

func (s *knowledgeService) List(ctx context.Context, category string) ([]*dto.KnowledgeEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if category != "" {
		specs = append(specs, specification.Filter("category", category))
	}

	entries, err := uow.KnowledgeRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.KnowledgeEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, s.toResponse(ctx, uow, entry))
	}
	return out, nil
}

func (s *knowledgeService) publishIndexJob(ctx context.Context, entryId uuid.UUID) error {
	job := dto.PublishIndexEntry{EntryId: entryId}
	jobJson, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, jobJson)
}

func (s *knowledgeService) ConsumeIndexJobs(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.indexTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processIndexJob(ctx, msg)
		}
	}()

	return nil
}

func (s *knowledgeService) processIndexJob(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexEntry
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("knowledge", "failed to unmarshal index job", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry, err := uow.KnowledgeRepository().FindOne(ctx, specification.ByID{ID: payload.EntryId})
	if err != nil {
		msg.Nack()
		return
	}
	if entry == nil {
		// Entry deleted before the job ran.
		msg.Ack()
		return
	}

	if err := s.indexer.Index(ctx, entry); err != nil {
		s.logger.Error("knowledge", "indexing failed", map[string]interface{}{
			"entry_id": entry.Id.String(),
			"error":    err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}

func (s *knowledgeService) toResponse(ctx context.Context, uow unitofwork.UnitOfWork, entry *entity.KnowledgeEntry) *dto.KnowledgeEntryResponse {
	chunkCount, err := uow.KnowledgeChunkRepository().Count(ctx, specification.ByEntryID{EntryID: entry.Id})
	if err != nil {
		chunkCount = 0
	}

	return &dto.KnowledgeEntryResponse{
		Id:         entry.Id,
		Category:   entry.Category,
		Title:      entry.Title,
		Content:    entry.Content,
		IsActive:   entry.IsActive,
		ChunkCount: chunkCount,
		CreatedAt:  entry.CreatedAt,
		UpdatedAt:  entry.UpdatedAt,
	}
}
