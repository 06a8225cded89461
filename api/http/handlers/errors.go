package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/cvstudio/api/http/presenter"
	"github.com/artem13815/cvstudio/pkg/apperr"
)

// InternalErrorDetail is the only detail clients see for unexpected failures.
const InternalErrorDetail = "internal error, please retry"

// fail answers with the status and message of a classified error. Server
// side failures are logged with their cause, which never reaches the client.
func fail(c *fiber.Ctx, log *zap.Logger, err error) error {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", errorFields(c, err)...)
	}
	return presenter.Error(c, status, detailOf(err))
}

// errorFields describes a failed request. Domain errors add the stack of the
// place they were raised.
func errorFields(c *fiber.Ctx, err error) []zap.Field {
	fields := []zap.Field{
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	}
	var de *apperr.DomainError
	if errors.As(err, &de) && len(de.Stack) > 0 {
		fields = append(fields, zap.ByteString("stack", de.Stack))
	}
	return fields
}

func detailOf(err error) string {
	return apperr.Message(err, InternalErrorDetail)
}

// ErrorHandler is the Fiber error handler: framework errors keep their code,
// anything else, panics included, becomes a generic 500.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return presenter.Error(c, fe.Code, fe.Message)
		}
		log.Error("unhandled error", errorFields(c, err)...)
		return presenter.Error(c, http.StatusInternalServerError, InternalErrorDetail)
	}
}
