package controller

import (
	"tv-keuzehulp-be/internal/apperror"
	"tv-keuzehulp-be/internal/constant"
	"tv-keuzehulp-be/internal/dto"
	"tv-keuzehulp-be/internal/pkg/serverutils"
	"tv-keuzehulp-be/internal/service"
	"tv-keuzehulp-be/internal/web"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	LoginPage(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	r.Get("/login", c.LoginPage)
	r.Post("/login", c.Login)
	r.Post("/logout", c.Logout)
}

func (c *authController) LoginPage(ctx *fiber.Ctx) error {
	if !c.service.Enabled() {
		return ctx.Redirect("/keuzehulp", fiber.StatusFound)
	}
	return c.renderLogin(ctx, fiber.StatusOK, "")
}

// Login accepts the HTML form post or a JSON body. JSON callers receive a
// bearer token; form callers are redirected to the keuzehulp.
func (c *authController) Login(ctx *fiber.Ctx) error {
	sess := serverutils.GetSession(ctx)

	if ctx.Is("json") {
		var req dto.PasswordLoginRequest
		if err := ctx.BodyParser(&req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorBody(constant.MsgInvalidRequest))
		}
		if err := serverutils.ValidateRequest(req); err != nil {
			return err
		}

		res, err := c.service.Login(ctx.UserContext(), sess, &req)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Ingelogd", res))
	}

	req := dto.PasswordLoginRequest{Password: ctx.FormValue("password")}
	if _, err := c.service.Login(ctx.UserContext(), sess, &req); err != nil {
		if apperror.KindOf(err) == apperror.KindUnauthorized {
			return c.renderLogin(ctx, fiber.StatusUnauthorized, constant.MsgWrongPassword)
		}
		return err
	}
	return ctx.Redirect("/keuzehulp", fiber.StatusFound)
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	if err := c.service.Logout(ctx.UserContext(), serverutils.GetSession(ctx)); err != nil {
		return err
	}
	ctx.ClearCookie(serverutils.SessionCookieName)

	if ctx.Is("json") || ctx.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON {
		return ctx.JSON(serverutils.SuccessResponse[any]("Uitgelogd", nil))
	}
	return ctx.Redirect("/login", fiber.StatusFound)
}

func (c *authController) renderLogin(ctx *fiber.Ctx, status int, message string) error {
	page, err := web.RenderLogin(web.LoginPage{Error: message})
	if err != nil {
		return apperror.Internal(constant.MsgInternalError, err)
	}
	ctx.Type("html", "utf-8")
	return ctx.Status(status).Send(page)
}
