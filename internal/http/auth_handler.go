package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blog-api/internal/service"
)

// TokenIssuer emite tokens de sesion.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthHandler mantiene dependencias para los endpoints de autenticacion.
type AuthHandler struct {
	logger  *zap.Logger
	users   *service.UserService
	tokens  TokenIssuer
	cookie  SessionCookie
	metrics *Metrics
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, users *service.UserService, tokens TokenIssuer, cookie SessionCookie, metrics *Metrics) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		users:   users,
		tokens:  tokens,
		cookie:  cookie,
		metrics: metrics,
	}
}

// SignUp maneja POST /auth/signup.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8,max=72"`
	}
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.SignUp(c.Request.Context(), service.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, h.logger, "sign up", err)
		return
	}

	respondSuccess(c, http.StatusCreated, "Account created successfully", user.Summary())
}

// SignIn maneja POST /auth/signin.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrRateLimited) {
			h.metrics.recordSignInThrottled()
		}
		respondServiceError(c, h.logger, "sign in", err)
		return
	}

	if h.tokens == nil {
		respondServiceError(c, h.logger, "sign in", errors.New("session tokens not configured"))
		return
	}
	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		respondServiceError(c, h.logger, "issue session token", err)
		return
	}
	h.cookie.Attach(c.Writer, token)

	respondSuccess(c, http.StatusOK, "Signed in successfully", user.Summary())
}

// SignOut maneja POST /auth/signout. Solo borra la cookie: el token sigue siendo valido hasta expirar.
func (h *AuthHandler) SignOut(c *gin.Context) {
	h.cookie.Detach(c.Writer)
	respondSuccess(c, http.StatusOK, "Signed out successfully", nil)
}

// Me maneja GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	callerID, ok := CallerID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), callerID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			h.cookie.Detach(c.Writer)
		}
		respondServiceError(c, h.logger, "get current user", err)
		return
	}

	respondSuccess(c, http.StatusOK, "Current user details fetched", user.Summary())
}
