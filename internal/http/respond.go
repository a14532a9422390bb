package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blog-api/internal/service"
)

// envelope es el formato de todas las respuestas de la API.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const (
	msgValidationFailed = "Validation failed"
	msgUnauthorized     = "Unauthorized"
	msgInternal         = "Internal Server Error"
)

func respondSuccess(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, envelope{Success: false, Message: message, Data: nil})
}

func respondValidation(c *gin.Context, issues []FieldIssue) {
	c.AbortWithStatusJSON(http.StatusBadRequest, envelope{Success: false, Message: msgValidationFailed, Data: issues})
}

// respondServiceError traduce errores del servicio al sobre HTTP. Los errores no previstos
// se registran y el cliente solo recibe un mensaje generico.
func respondServiceError(c *gin.Context, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		respondError(c, http.StatusConflict, "Email already in use")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, service.ErrRateLimited):
		respondError(c, http.StatusTooManyRequests, "Too many sign-in attempts")
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrPostNotFound):
		respondError(c, http.StatusNotFound, "Post not found")
	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, "Forbidden: You are not the author")
	default:
		logger.Error(op+" failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		respondError(c, http.StatusInternalServerError, msgInternal)
	}
}
