package handler

import (
	"os"

	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	internalWS "github.com/nurfahmi/Agentic-Wa/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AgentFeedHandler upgrades dashboard connections onto the hub that
// streams escalation and decision events to agents.
type AgentFeedHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewAgentFeedHandler(hub *internalWS.Hub, log logger.ILogger) *AgentFeedHandler {
	return &AgentFeedHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs authenticates the handshake and hands the connection to the hub.
// Browsers cannot set headers on websocket upgrades, so the token is
// accepted from the query string first.
func (h *AgentFeedHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("AgentFeedHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	agentIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}

	agentID, err := uuid.Parse(agentIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid agent ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(c *websocket.Conn) {
			h.logger.Info("AgentFeedHandler", "Starting WebSocket session", map[string]interface{}{"agent_id": agentID})
			internalWS.ServeWs(h.hub, c, agentID)
			h.logger.Info("AgentFeedHandler", "WebSocket session ended", map[string]interface{}{"agent_id": agentID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *AgentFeedHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
