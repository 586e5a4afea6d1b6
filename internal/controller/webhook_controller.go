package controller

import (
	"github.com/nurfahmi/Agentic-Wa/internal/dto"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/serverutils"
	"github.com/nurfahmi/Agentic-Wa/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	Verify(ctx *fiber.Ctx) error
	Receive(ctx *fiber.Ctx) error
}

type webhookController struct {
	webhookService service.IWebhookService
}

func NewWebhookController(webhookService service.IWebhookService) IWebhookController {
	return &webhookController{
		webhookService: webhookService,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/webhook")
	h.Get("", c.Verify)
	h.Post("", c.Receive)
}

// Verify answers Meta's subscription handshake with the raw challenge.
func (c *webhookController) Verify(ctx *fiber.Ctx) error {
	mode := ctx.Query("hub.mode")
	token := ctx.Query("hub.verify_token")
	challenge := ctx.Query("hub.challenge")

	res, err := c.webhookService.Verify(mode, token, challenge)
	if err != nil {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Verification failed"))
	}
	return ctx.SendString(res)
}

func (c *webhookController) Receive(ctx *fiber.Ctx) error {
	var payload dto.WebhookPayload
	if err := ctx.BodyParser(&payload); err != nil {
		// Meta retries on non-200, so malformed deliveries are still acked.
		return ctx.SendStatus(fiber.StatusOK)
	}

	if err := c.webhookService.ProcessInbound(ctx.Context(), &payload); err != nil {
		return ctx.SendStatus(fiber.StatusOK)
	}
	return ctx.SendStatus(fiber.StatusOK)
}
