package controller

import (
	"github.com/nurfahmi/Agentic-Wa/internal/dto"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/serverutils"
	"github.com/nurfahmi/Agentic-Wa/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRuleController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Upsert(ctx *fiber.Ctx) error
}

type ruleController struct {
	ruleService service.IRuleService
}

func NewRuleController(ruleService service.IRuleService) IRuleController {
	return &ruleController{ruleService: ruleService}
}

func (c *ruleController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/rules")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Put("", c.Upsert)
}

func (c *ruleController) List(ctx *fiber.Ctx) error {
	res, err := c.ruleService.List(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list rules", res))
}

func (c *ruleController) Upsert(ctx *fiber.Ctx) error {
	var req dto.UpsertRuleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ruleService.Upsert(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success upsert rule", res))
}
