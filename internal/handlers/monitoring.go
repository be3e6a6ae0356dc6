package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/favorites/internal/monitoring"
	"github.com/charlesng35/favorites/pkg/response"
)

// MonitoringHandler exposes the in-process statistics snapshot.
type MonitoringHandler struct {
	module *monitoring.Module
}

// NewMonitoringHandler constructs a MonitoringHandler. A nil module serves an empty summary.
func NewMonitoringHandler(module *monitoring.Module) *MonitoringHandler {
	return &MonitoringHandler{module: module}
}

// Summary returns the current statistics.
//
//	GET /monitoring/summary
func (h *MonitoringHandler) Summary(c *gin.Context) {
	response.Success(c, http.StatusOK, h.module.Snapshot())
}
