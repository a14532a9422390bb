package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const callerIDKey = "caller_id"

// TokenVerifier resuelve el usuario de un token de sesion.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// SessionAuthMiddleware exige una cookie de sesion valida y guarda el id del usuario en el contexto.
// Cookie ausente, firma invalida o token expirado producen la misma respuesta 401.
func SessionAuthMiddleware(logger *zap.Logger, cookie SessionCookie, tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil {
			logger.Error("session verifier not configured")
			respondError(c, http.StatusInternalServerError, msgInternal)
			return
		}

		token, ok := cookie.Extract(c.Request)
		if !ok {
			respondError(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		c.Set(callerIDKey, userID)
		c.Next()
	}
}

// CallerID obtiene el usuario autenticado desde el contexto.
func CallerID(c *gin.Context) (string, bool) {
	val, ok := c.Get(callerIDKey)
	if !ok {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}
