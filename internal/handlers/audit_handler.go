package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/service"
)

// AuditHandler exposes the read side of the audit trail.
type AuditHandler struct {
	audit  *service.AuditService
	logger *logger.Logger
}

func NewAuditHandler(audit *service.AuditService, log *logger.Logger) *AuditHandler {
	return &AuditHandler{audit: audit, logger: log}
}

// RegisterRoutes registers the audit routes.
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit", h.List)
}

// List returns audit entries, newest first, filtered by entity id and type.
// GET /api/v1/audit?entityId=&entityType=&limit=&offset=
func (h *AuditHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	entries, err := h.audit.List(c.Request.Context(), c.Query("entityId"), c.Query("entityType"), limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if entries == nil {
		entries = []*models.AuditLog{}
	}
	c.JSON(http.StatusOK, entries)
}
