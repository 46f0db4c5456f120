package middleware

import (
	"errors"
	"net/http"
	"strings"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var statusMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
}

// ErrorHandler renders every error as {success:false, error:<status>, message}.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get().With(
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Any("request_id", c.Locals(RequestIDKey)),
		)

		status := StatusFor(err)

		var domainErr *domain.DomainError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &domainErr):
			if status >= http.StatusInternalServerError {
				log.Error("request failed", zap.String("code", string(domainErr.Code)), zap.Error(err))
			} else {
				log.Info("request rejected", zap.String("code", string(domainErr.Code)), zap.String("reason", domainErr.Message), zap.Error(domainErr.Err))
			}
		case errors.As(err, &fiberErr):
			log.Debug("fiber error", zap.Int("status", status), zap.String("message", fiberErr.Message))
		default:
			log.Error("unhandled error", zap.Error(err))
		}

		return c.Status(status).JSON(dto.ErrorResponse{
			Success: false,
			Error:   status,
			Message: statusMessage(status),
		})
	}
}

// StatusFor returns the HTTP status an error is rendered with.
func StatusFor(err error) int {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return mapDomainErrorToHTTPStatus(domainErr)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return http.StatusInternalServerError
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.ErrBadRequest:
		return http.StatusBadRequest
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrInsertFailure, domain.ErrDeleteFailure:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func statusMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	if text := http.StatusText(status); text != "" {
		return strings.ToLower(text)
	}
	return statusMessages[http.StatusInternalServerError]
}
