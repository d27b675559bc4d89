package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/service"
)

// DashboardHandler serves the portfolio dashboard metrics.
type DashboardHandler struct {
	dashboard *service.DashboardService
	logger    *logger.Logger
}

func NewDashboardHandler(dashboard *service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: log}
}

// RegisterRoutes registers the dashboard routes.
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/metrics", h.Metrics)
}

// Metrics returns the headline counts for the dashboard.
// GET /api/v1/dashboard/metrics
func (h *DashboardHandler) Metrics(c *gin.Context) {
	metrics, err := h.dashboard.GetMetrics(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}
