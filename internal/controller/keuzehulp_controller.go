package controller

import (
	"errors"

	"tv-keuzehulp-be/internal/apperror"
	"tv-keuzehulp-be/internal/constant"
	"tv-keuzehulp-be/internal/dto"
	"tv-keuzehulp-be/internal/pkg/serverutils"
	"tv-keuzehulp-be/internal/service"
	"tv-keuzehulp-be/internal/web"

	"github.com/gofiber/fiber/v2"
)

type IKeuzehulpController interface {
	RegisterRoutes(r fiber.Router, apiGate, pageGate fiber.Handler)
	Home(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	Keuzehulp(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
	Products(ctx *fiber.Ctx) error
}

type keuzehulpController struct {
	service        service.IKeuzehulpService
	loginEnabled   bool
	exposeProducts bool
	firstQuestion  string
}

func NewKeuzehulpController(service service.IKeuzehulpService, loginEnabled, exposeProducts bool) IKeuzehulpController {
	first := ""
	if len(constant.KeuzehulpQuestions) > 0 {
		first = constant.KeuzehulpQuestions[0]
	}
	return &keuzehulpController{
		service:        service,
		loginEnabled:   loginEnabled,
		exposeProducts: exposeProducts,
		firstQuestion:  first,
	}
}

func (c *keuzehulpController) RegisterRoutes(r fiber.Router, apiGate, pageGate fiber.Handler) {
	r.Get("/", c.Home)
	r.Get("/healthz", c.Health)
	r.Get("/keuzehulp", pageGate, c.Keuzehulp)
	r.Post("/chat", apiGate, c.Chat)
	r.Post("/ask", apiGate, c.Ask)
	if c.exposeProducts {
		r.Get("/products", apiGate, c.Products)
	}
}

func (c *keuzehulpController) Home(ctx *fiber.Ctx) error {
	if !c.loginEnabled {
		return ctx.SendString(constant.MsgLanding)
	}
	if sess := serverutils.GetSession(ctx); sess != nil && sess.Authenticated {
		return ctx.Redirect("/keuzehulp", fiber.StatusFound)
	}
	return ctx.Redirect("/login", fiber.StatusFound)
}

func (c *keuzehulpController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthResponse{
		Status:   "ok",
		Products: c.service.ProductCount(),
	})
}

func (c *keuzehulpController) Keuzehulp(ctx *fiber.Ctx) error {
	if err := c.service.ResetSession(ctx.UserContext(), serverutils.GetSession(ctx)); err != nil {
		return err
	}

	page, err := web.RenderKeuzehulp(web.KeuzehulpPage{FirstQuestion: c.firstQuestion})
	if err != nil {
		return apperror.Internal(constant.MsgInternalError, err)
	}
	ctx.Type("html", "utf-8")
	return ctx.Send(page)
}

func (c *keuzehulpController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if !ctx.Is("json") {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorBody(constant.MsgInvalidRequest))
	}
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorBody(constant.MsgInvalidRequest))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Chat(ctx.UserContext(), serverutils.GetSession(ctx), &req)
	if errors.Is(err, service.ErrEmptyMessage) {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ChatResponse{Assistant: constant.MsgNoQuestion})
	}
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *keuzehulpController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorBody(constant.MsgInvalidRequest))
	}

	res, err := c.service.Ask(ctx.UserContext(), serverutils.GetSession(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *keuzehulpController) Products(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.ProductsResponse(c.service.Products(ctx.UserContext())))
}
