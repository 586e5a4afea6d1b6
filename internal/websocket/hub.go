package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisChannel carries hub messages between instances so an escalation
// raised on one instance reaches agents connected to another.
const redisChannel = "agent_feed_events"

// Hub fans escalation and conversation events out to connected agent
// dashboards.
type Hub struct {
	// Registered clients map: AgentID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.AgentID] = append(h.clients[client.AgentID], client)
			h.mu.Unlock()
			h.logger.Info("hub", "agent connected", map[string]interface{}{"agent_id": client.AgentID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.AgentID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.AgentID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.AgentID]) == 0 {
					delete(h.clients, client.AgentID)
					h.logger.Info("hub", "agent disconnected", map[string]interface{}{"agent_id": client.AgentID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends an event to ALL connected agents, local and remote.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": eventType,
		"data": payload,
	})

	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				close(client.Send)
				h.unregister <- client
			}
		}
	}
	h.mu.RUnlock()

	if h.rdb != nil {
		wire, _ := json.Marshal(map[string]interface{}{
			"target_agent_id": "*",
			"message":         data,
		})
		h.rdb.Publish(context.Background(), redisChannel, wire)
	}
}

// Send delivers an event to one agent's connected devices.
func (h *Hub) Send(agentID uuid.UUID, eventType string, payload interface{}) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": eventType,
		"data": payload,
	})

	h.mu.RLock()
	clients, localFound := h.clients[agentID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("hub", "client send buffer full, dropping message", map[string]interface{}{"agent_id": agentID})
				close(client.Send)
				h.unregister <- client
			}
		}
	}

	if h.rdb != nil {
		wire, _ := json.Marshal(map[string]interface{}{
			"target_agent_id": agentID.String(),
			"message":         data,
		})
		h.rdb.Publish(context.Background(), redisChannel, wire)
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetAgentID string          `json:"target_agent_id"`
			Message       json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if payload.TargetAgentID == "*" {
			h.mu.RLock()
			for _, clients := range h.clients {
				for _, client := range clients {
					select {
					case client.Send <- payload.Message:
					default:
						close(client.Send)
						h.unregister <- client
					}
				}
			}
			h.mu.RUnlock()
			continue
		}

		uid, err := uuid.Parse(payload.TargetAgentID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[uid]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					close(client.Send)
					h.unregister <- client
				}
			}
		}
	}
}
