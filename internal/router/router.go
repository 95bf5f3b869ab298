package router

import (
	"time"

	"lifeplan/internal/middleware"
	"lifeplan/internal/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Options struct {
	CORSOrigins  []string
	SecureCookie bool
}

func NewRouter(handler *web.Handler, limiter *middleware.RateLimiter, logger *zap.Logger, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())
	r.SetHTMLTemplate(web.Template())

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── PAGE ─────────────────────────
	page := r.Group("/")
	page.Use(middleware.Session(opts.SecureCookie))
	{
		page.GET("", handler.Page)
		page.GET("status", handler.Status)
		page.POST("submit", middleware.RateLimit(limiter), handler.Submit)
	}

	// ───────────────────────── JSON API ─────────────────────────
	api := r.Group("/api")
	if len(opts.CORSOrigins) > 0 {
		api.Use(cors.New(cors.Config{
			AllowOrigins: opts.CORSOrigins,
			AllowMethods: []string{"POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}
	{
		api.POST("/recommendation", middleware.RateLimit(limiter), handler.Recommend)
		api.OPTIONS("/recommendation", func(c *gin.Context) {})
	}

	return r
}
