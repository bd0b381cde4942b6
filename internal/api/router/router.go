package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"al-muallim/backend/config"
	"al-muallim/backend/internal/api/handler"
	"al-muallim/backend/internal/api/middleware"
	"al-muallim/backend/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		v1.GET("/weeks", h.Week.List)

		// plan module
		v1.GET("/plans", h.Plan.List)
		v1.PUT("/plans", h.Plan.Save)
		v1.GET("/plans/detail", h.Plan.Get)
		v1.GET("/plans/week-set", h.Plan.WeekSet)
		v1.GET("/analytics", h.Plan.Analytics)

		// settings module
		settings := v1.Group("/settings")
		{
			settings.GET("", h.Settings.Get)
			settings.PUT("", h.Settings.Update)
			settings.GET("/subjects", h.Settings.Subjects)
			settings.GET("/grades", h.Settings.Grades)
		}

		// backup module
		backup := v1.Group("/backup")
		{
			backup.GET("", h.Backup.Download)
			backup.POST("/restore", h.Backup.Restore)
			backup.POST("/reset", h.Backup.Reset)
		}

		// export module (document rendering is the expensive path)
		export := v1.Group("/export")
		export.Use(middleware.RateLimit(rdb, cfg.Export.RateLimit, cfg.Export.RateLimitEvery))
		{
			export.GET("/plan/pdf", h.Export.PlanPDF)
			export.GET("/plan/excel", h.Export.PlanExcel)
			export.GET("/master/pdf", h.Export.MasterPDF)
			export.GET("/master/excel", h.Export.MasterExcel)
		}
	}

	return r
}
