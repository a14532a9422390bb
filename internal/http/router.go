package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig agrupa las opciones transversales del router.
type RouterConfig struct {
	CORSOrigins []string
	Metrics     *Metrics
	// RequireSession es el guard de sesion aplicado a las rutas protegidas.
	RequireSession gin.HandlerFunc
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	cfg RouterConfig,
	authH *AuthHandler,
	postH *PostHandler,
	healthH *HealthHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(
		zapLoggerMiddleware(logger),
		recoveryMiddleware(logger),
		cfg.Metrics.middleware(),
		corsMiddleware(cfg.CORSOrigins),
	)
	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "Not Found")
	})

	requireSession := cfg.RequireSession

	auth := r.Group("/auth", jsonContentTypeMiddleware())
	auth.POST("/signup", authH.SignUp)
	auth.POST("/signin", authH.SignIn)
	auth.POST("/signout", authH.SignOut)
	auth.GET("/me", requireSession, authH.Me)

	// Lectura abierta; las mutaciones pasan por el guard de sesion.
	posts := r.Group("/posts", jsonContentTypeMiddleware())
	posts.GET("", postH.List)
	posts.GET("/:id", postH.Get)
	posts.POST("", requireSession, postH.Create)
	posts.PATCH("/:id", requireSession, postH.Update)
	posts.DELETE("/:id", requireSession, postH.Delete)

	if healthH != nil {
		r.GET("/healthz", healthH.Health)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", cfg.Metrics.handler())
	}

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// recoveryMiddleware convierte un panic en una respuesta 500 con el sobre estandar.
func recoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		respondError(c, http.StatusInternalServerError, msgInternal)
	})
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
