package controller

import (
	"github.com/nurfahmi/Agentic-Wa/internal/constant"
	"github.com/nurfahmi/Agentic-Wa/internal/dto"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/serverutils"
	"github.com/nurfahmi/Agentic-Wa/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	RegisterAgent(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) IAuthController {
	return &authController{authService: authService}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)
	h.Post("/agents", serverutils.JwtMiddleware, c.RegisterAgent)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) RegisterAgent(ctx *fiber.Ctx) error {
	role, _ := ctx.Locals("role").(string)
	if role != constant.RoleSuperadmin && role != constant.RoleAdmin {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Admin role required"))
	}

	var req dto.RegisterAgentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.RegisterAgent(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Agent registered", res))
}
