package service

import (
	"context"
	"strings"

	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	"github.com/nurfahmi/Agentic-Wa/internal/websocket"
	"github.com/nurfahmi/Agentic-Wa/pkg/events"
	pktNats "github.com/nurfahmi/Agentic-Wa/pkg/nats"
)

type IEventFeedService interface {
	Start() error
}

// eventFeedService relays bus events to connected agent dashboards.
// Decision and document events are only published to NATS, so without
// this bridge a dashboard would never see them live.
type eventFeedService struct {
	subscriber *pktNats.Subscriber
	wsHub      *websocket.Hub
	logger     logger.ILogger
}

func NewEventFeedService(
	subscriber *pktNats.Subscriber,
	wsHub *websocket.Hub,
	log logger.ILogger,
) IEventFeedService {
	return &eventFeedService{
		subscriber: subscriber,
		wsHub:      wsHub,
		logger:     log,
	}
}

// Start registers durable consumers for the feed subjects. Escalations
// are broadcast directly by the escalation service, so they are not
// consumed here to avoid duplicate frames.
func (s *eventFeedService) Start() error {
	if s.subscriber == nil {
		s.logger.Warn("EVENT_FEED", "NATS subscriber unavailable, live feed disabled", nil)
		return nil
	}

	subjects := map[string]string{
		"events." + events.TypeDecisionLogged:       "feed-decisions",
		"events." + events.TypeDocumentProcessed:    "feed-documents",
		"events." + events.TypeConversationAssigned: "feed-assignments",
	}

	for subject, durable := range subjects {
		if err := s.subscriber.Subscribe(subject, durable, s.relay); err != nil {
			return err
		}
	}

	return nil
}

func (s *eventFeedService) relay(_ context.Context, event events.Event) error {
	s.wsHub.Broadcast(strings.ToLower(event.EventType()), event.Payload())

	s.logger.Debug("EVENT_FEED", "Relayed event to agent feed", map[string]interface{}{
		"event_type": event.EventType(),
	})
	return nil
}
