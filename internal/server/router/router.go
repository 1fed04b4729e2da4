package router

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/retailsheet/internal/config"
	"github.com/mamadbah2/retailsheet/internal/metrics"
	"github.com/mamadbah2/retailsheet/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(cfg config.ServerConfig, datasets *handlers.DatasetHandler, health *handlers.HealthHandler, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(corsMiddleware(cfg.AllowedOrigins))
	if m != nil {
		r.Use(m.Middleware())
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	api := r.Group("/api/:kind")
	api.POST("/import", datasets.Import)
	api.POST("/import-sheet", datasets.ImportSheet)
	api.POST("/load", datasets.Load)
	api.GET("/records", datasets.Records)
	api.DELETE("/records", datasets.Clear)
	api.GET("/summary", datasets.Summary)
	api.POST("/export", datasets.Export)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", handlers.SessionHeader},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
