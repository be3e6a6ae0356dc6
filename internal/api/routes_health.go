package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/favorites/internal/app"
	"github.com/charlesng35/favorites/internal/handlers"
	"github.com/charlesng35/favorites/internal/monitoring"
)

func registerHealthRoutes(r *gin.Engine, cfg *app.Config, mon *monitoring.Module) {
	// The static probe is always served.
	r.GET("/health", handlers.Health())

	if !cfg.Monitoring.Health.Enabled || mon == nil || mon.Health() == nil {
		r.GET("/health/live", disabledHealthHandler)
		r.GET("/health/ready", disabledHealthHandler)
		return
	}

	manager := mon.Health()
	r.GET("/health/live", handlers.HealthReport(func(c *gin.Context) monitoring.HealthReport {
		return manager.EvaluateLiveness(c.Request.Context())
	}))
	r.GET("/health/ready", handlers.HealthReport(func(c *gin.Context) monitoring.HealthReport {
		return manager.EvaluateReadiness(c.Request.Context())
	}))
}

func disabledHealthHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"status": "disabled"})
}
