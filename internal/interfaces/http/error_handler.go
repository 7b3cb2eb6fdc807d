package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-admin-api/internal/application/dto"
	"github.com/jhoicas/catalogo-admin-api/internal/domain"
	"github.com/jhoicas/catalogo-admin-api/pkg/jwt"
	"github.com/jhoicas/catalogo-admin-api/pkg/logger"
)

// errorMapping código HTTP y código de error por sentinel de dominio.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrDuplicate, fiber.StatusBadRequest, "DUPLICATE"},
	{domain.ErrEmailAlreadyExists, fiber.StatusBadRequest, "EMAIL_EXISTS"},
	{domain.ErrInsufficientStock, fiber.StatusBadRequest, "INSUFFICIENT_STOCK"},
	{domain.ErrInvalidFileType, fiber.StatusBadRequest, "INVALID_FILE"},
	{domain.ErrFileTooLarge, fiber.StatusBadRequest, "INVALID_FILE"},
	{domain.ErrFileRequired, fiber.StatusBadRequest, "INVALID_FILE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "INVALID_INPUT"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrAccountInactive, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrInvalidRefreshToken, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{jwt.ErrTokenExpired, fiber.StatusUnauthorized, "TOKEN_EXPIRED"},
	{jwt.ErrTokenInvalid, fiber.StatusUnauthorized, "INVALID_TOKEN"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
}

// statusCodes código de error para *fiber.Error sin sentinel.
var statusCodes = map[int]string{
	fiber.StatusBadRequest:      "BAD_REQUEST",
	fiber.StatusUnauthorized:    "UNAUTHORIZED",
	fiber.StatusForbidden:       "FORBIDDEN",
	fiber.StatusNotFound:        "NOT_FOUND",
	fiber.StatusTooManyRequests: "TOO_MANY_REQUESTS",
}

// ErrorHandler traduce cualquier error devuelto por un handler o middleware al
// sobre {success:false, message, errors?, stack?}. En development los 500 llevan
// el mensaje real y el stack.
func ErrorHandler(development bool, log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")
	return func(c *fiber.Ctx, err error) error {
		status, body := mapError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("request_id", RequestID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error no controlado")
			if development {
				body.Message = err.Error()
				body.Stack = fmt.Sprintf("%+v", err)
			}
		}
		return c.Status(status).JSON(body)
	}
}

func mapError(err error) (int, dto.ErrorResponse) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: verr.Error(),
			Errors:  verr.Messages(),
		}
	}
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return m.status, dto.ErrorResponse{Code: m.code, Message: m.err.Error()}
		}
	}
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		if ferr.Code == fiber.StatusRequestEntityTooLarge {
			return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_FILE", Message: domain.ErrFileTooLarge.Error()}
		}
		code, ok := statusCodes[ferr.Code]
		if !ok {
			code = "HTTP_ERROR"
		}
		if ferr.Code >= fiber.StatusInternalServerError {
			return ferr.Code, dto.ErrorResponse{Code: "INTERNAL", Message: "Internal server error"}
		}
		return ferr.Code, dto.ErrorResponse{Code: code, Message: ferr.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "Internal server error"}
}
