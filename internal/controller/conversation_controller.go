package controller

import (
	"github.com/nurfahmi/Agentic-Wa/internal/dto"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/serverutils"
	"github.com/nurfahmi/Agentic-Wa/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	DecisionLogs(ctx *fiber.Ctx) error
	Reply(ctx *fiber.Ctx) error
	Takeover(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
}

type conversationController struct {
	conversationService service.IConversationService
}

func NewConversationController(conversationService service.IConversationService) IConversationController {
	return &conversationController{
		conversationService: conversationService,
	}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversations")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Get(":id/decision-logs", c.DecisionLogs)
	h.Post(":id/reply", c.Reply)
	h.Post(":id/takeover", c.Takeover)
	h.Post(":id/close", c.Close)
}

func (c *conversationController) List(ctx *fiber.Ctx) error {
	var req dto.ListConversationsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.conversationService.List(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list conversations", res))
}

func (c *conversationController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid conversation ID"))
	}

	res, err := c.conversationService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Conversation not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show conversation", res))
}

func (c *conversationController) DecisionLogs(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid conversation ID"))
	}

	res, err := c.conversationService.DecisionLogs(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list decision logs", res))
}

func (c *conversationController) Reply(ctx *fiber.Ctx) error {
	agentId := agentIdFromLocals(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid conversation ID"))
	}

	var req dto.AgentReplyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.conversationService.Reply(ctx.Context(), id, agentId, &req); err != nil {
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Reply sent", nil))
}

func (c *conversationController) Takeover(ctx *fiber.Ctx) error {
	agentId := agentIdFromLocals(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid conversation ID"))
	}

	if err := c.conversationService.Takeover(ctx.Context(), id, agentId); err != nil {
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Conversation taken over", nil))
}

func (c *conversationController) Close(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid conversation ID"))
	}

	if err := c.conversationService.Close(ctx.Context(), id); err != nil {
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Conversation closed", nil))
}

func agentIdFromLocals(ctx *fiber.Ctx) uuid.UUID {
	idStr, _ := ctx.Locals("user_id").(string)
	id, _ := uuid.Parse(idStr)
	return id
}
