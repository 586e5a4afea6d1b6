package controller

import (
	"github.com/nurfahmi/Agentic-Wa/internal/dto"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/serverutils"
	"github.com/nurfahmi/Agentic-Wa/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEscalationController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Assign(ctx *fiber.Ctx) error
	Resolve(ctx *fiber.Ctx) error
}

type escalationController struct {
	escalationService service.IEscalationService
}

func NewEscalationController(escalationService service.IEscalationService) IEscalationController {
	return &escalationController{
		escalationService: escalationService,
	}
}

func (c *escalationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/escalations")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post(":id/assign", c.Assign)
	h.Post(":id/resolve", c.Resolve)
}

func (c *escalationController) List(ctx *fiber.Ctx) error {
	status := ctx.Query("status")

	res, err := c.escalationService.List(ctx.Context(), status)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list escalations", res))
}

func (c *escalationController) Assign(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid escalation ID"))
	}

	var req dto.AssignEscalationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	// When no agent is named in the body the caller assigns themselves.
	if req.AgentId == uuid.Nil {
		req.AgentId = agentIdFromLocals(ctx)
	}

	if err := c.escalationService.Assign(ctx.Context(), id, req.AgentId); err != nil {
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Escalation assigned", nil))
}

func (c *escalationController) Resolve(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid escalation ID"))
	}

	var req dto.ResolveEscalationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.escalationService.Resolve(ctx.Context(), id, req.Note); err != nil {
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Escalation resolved", nil))
}
