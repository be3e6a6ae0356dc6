package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/favorites/internal/monitoring"
	"github.com/charlesng35/favorites/pkg/response"
)

// Health returns the static liveness payload.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}

// HealthReport renders a probe report, answering 503 when any probe failed.
func HealthReport(evaluate func(c *gin.Context) monitoring.HealthReport) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := evaluate(c)
		status := http.StatusOK
		if !report.Success {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":    report.Status,
			"kind":      report.Kind,
			"checks":    report.Checks,
			"checkedAt": report.CheckedAt,
		})
	}
}
