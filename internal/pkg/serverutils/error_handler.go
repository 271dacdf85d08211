package serverutils

import (
	"errors"

	"tv-keuzehulp-be/internal/apperror"
	"tv-keuzehulp-be/internal/constant"
	"tv-keuzehulp-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// HandleError maps an error to a status and the flat {"error": ...} body.
// Upstream and internal details are logged, never returned.
func HandleError(ctx *fiber.Ctx, err error, log logger.ILogger) error {
	if appErr, ok := apperror.As(err); ok {
		switch appErr.Kind {
		case apperror.KindValidation:
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorBody(appErr.Message))
		case apperror.KindUnauthorized:
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorBody(appErr.Message))
		case apperror.KindUpstream:
			log.Error(constant.ModuleHTTP, "upstream failure", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody(appErr.Message))
		}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		return ctx.Status(fiberErr.Code).JSON(ErrorBody(fiberErr.Message))
	}

	log.Error(constant.ModuleHTTP, "unhandled error", map[string]interface{}{
		"path":  ctx.Path(),
		"error": err.Error(),
	})
	return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody(constant.MsgInternalError))
}

// ErrorHandlerMiddleware converts errors returned further down the chain,
// including panics recovered below it
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return HandleError(ctx, err, log)
	}
}

// ErrorHandler is installed as the fiber.Config fallback
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		return HandleError(ctx, err, log)
	}
}
