package bootstrap

import (
	"context"
	"log"

	"github.com/nurfahmi/Agentic-Wa/internal/config"
	"github.com/nurfahmi/Agentic-Wa/internal/controller"
	"github.com/nurfahmi/Agentic-Wa/internal/handler"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/mailer"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/implementation"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/unitofwork"
	"github.com/nurfahmi/Agentic-Wa/internal/service"
	"github.com/nurfahmi/Agentic-Wa/internal/websocket"
	"github.com/nurfahmi/Agentic-Wa/pkg/ai"
	"github.com/nurfahmi/Agentic-Wa/pkg/ai/escalation"
	"github.com/nurfahmi/Agentic-Wa/pkg/ai/rules"
	"github.com/nurfahmi/Agentic-Wa/pkg/ai/tools"
	"github.com/nurfahmi/Agentic-Wa/pkg/embedding"
	"github.com/nurfahmi/Agentic-Wa/pkg/llm/openai"
	pktNats "github.com/nurfahmi/Agentic-Wa/pkg/nats"
	"github.com/nurfahmi/Agentic-Wa/pkg/rag"
	"github.com/nurfahmi/Agentic-Wa/pkg/store"
	"github.com/nurfahmi/Agentic-Wa/pkg/wa"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WebhookController      controller.IWebhookController
	AuthController         controller.IAuthController
	ConversationController controller.IConversationController
	KnowledgeController    controller.IKnowledgeController
	RuleController         controller.IRuleController
	EscalationController   controller.IEscalationController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	KnowledgeService service.IKnowledgeService
	EventFeedService service.IEventFeedService

	// WebSockets
	AgentFeedHandler *handler.AgentFeedHandler
	WebSocketHub     *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
		cfg.SMTP.AlertEmail,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)

	// Conversation state lives in Redis so multiple instances see the
	// same stage. Single-node dev setups fall back to process memory.
	var stateStore store.StateStore
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Using in-memory state store", err)
		stateStore = store.NewMemoryStateStore()
	} else {
		stateStore = store.NewRedisStateStoreFromClient(rdb)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/agent_feed.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. AI Pipeline
	embeddingProvider := embedding.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.EmbeddingModel)
	llmProvider := openai.NewProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.ChatModel)

	chunkRepo := implementation.NewKnowledgeChunkRepository(db)
	searcher := rag.NewSearcher(chunkRepo, embeddingProvider, sysLogger)
	indexer := rag.NewIndexer(chunkRepo, embeddingProvider, sysLogger)

	ruleSource := rules.NewSource(implementation.NewRuleRepository(db), sysLogger)
	ruleEngine := rules.NewEngine(ruleSource)

	employerRepo := implementation.NewEmployerRepository(db)
	slipExtractor := tools.NewVisionExtractor(cfg.Ai.OpenAIAPIKey, cfg.Ai.ChatModel)

	toolRegistry := tools.NewRegistry(sysLogger)
	toolRegistry.Register(tools.NewOcrTool(implementation.NewDocumentRepository(db), slipExtractor, natsPub, sysLogger))
	toolRegistry.Register(tools.NewEmployerValidatorTool(employerRepo, sysLogger))
	toolRegistry.Register(tools.NewEligibilityCalculatorTool(ruleEngine, employerRepo, sysLogger))

	orchestrator := ai.NewOrchestrator(
		llmProvider,
		searcher,
		toolRegistry,
		escalation.NewPolicy(),
		stateStore,
		implementation.NewMessageRepository(db),
		implementation.NewDecisionLogRepository(db),
		sysLogger,
	)

	// 4. Services
	waClient := wa.NewClient(cfg.Waba.Token, cfg.Waba.PhoneNumberID, cfg.Waba.APIVersion)

	publisherService := service.NewPublisherService(cfg.Ai.MessageTopic, pubSub)
	webhookService := service.NewWebhookService(
		uowFactory,
		publisherService,
		waClient,
		cfg.Waba.VerifyToken,
		"uploads",
		sysLogger,
	)

	escalationService := service.NewEscalationService(uowFactory, natsPub, emailService, wsHub, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.MessageTopic,
		uowFactory,
		orchestrator,
		waClient,
		escalationService,
		natsPub,
		sysLogger,
	)

	indexPublisher := service.NewPublisherService(cfg.Ai.IndexTopic, pubSub)
	knowledgeService := service.NewKnowledgeService(
		uowFactory,
		indexPublisher,
		indexer,
		pubSub,
		cfg.Ai.IndexTopic,
		sysLogger,
	)

	ruleService := service.NewRuleService(uowFactory, ruleSource)
	conversationService := service.NewConversationService(uowFactory, waClient, sysLogger)
	authService := service.NewAuthService(uowFactory, cfg.App.JWTSecret)

	agentFeedHandler := handler.NewAgentFeedHandler(wsHub, wsLogger)
	eventFeedService := service.NewEventFeedService(natsSub, wsHub, sysLogger)

	// 5. Controllers
	return &Container{
		WebhookController:      controller.NewWebhookController(webhookService),
		AuthController:         controller.NewAuthController(authService),
		ConversationController: controller.NewConversationController(conversationService),
		KnowledgeController:    controller.NewKnowledgeController(knowledgeService),
		RuleController:         controller.NewRuleController(ruleService),
		EscalationController:   controller.NewEscalationController(escalationService),

		ConsumerService:  consumerService,
		KnowledgeService: knowledgeService,
		EventFeedService: eventFeedService,

		AgentFeedHandler: agentFeedHandler,
		WebSocketHub:     wsHub,
	}
}
