package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/service"
)

// LookupHandler handles phase and status lookup endpoints.
type LookupHandler struct {
	lookups *service.LookupService
	logger  *logger.Logger
}

func NewLookupHandler(lookups *service.LookupService, log *logger.Logger) *LookupHandler {
	return &LookupHandler{lookups: lookups, logger: log}
}

// RegisterRoutes registers all lookup routes.
func (h *LookupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	phases := rg.Group("/phases")
	{
		phases.GET("", h.ListPhases)
		phases.POST("", h.CreatePhase)
		phases.PUT("/:id/active", h.SetPhaseActive)
	}
	statuses := rg.Group("/statuses")
	{
		statuses.GET("", h.ListStatuses)
		statuses.POST("", h.CreateStatus)
		statuses.PUT("/:id/active", h.SetStatusActive)
	}
}

type setActiveRequest struct {
	IsActive *bool `json:"isActive"`
}

// ListPhases returns the active phases for one lookup domain.
// GET /api/v1/phases?type=demand|project
func (h *LookupHandler) ListPhases(c *gin.Context) {
	phases, err := h.lookups.ListPhases(c.Request.Context(), models.LookupType(c.Query("type")))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if phases == nil {
		phases = []*models.Phase{}
	}
	c.JSON(http.StatusOK, phases)
}

// CreatePhase adds a phase to a lookup domain.
// POST /api/v1/phases
func (h *LookupHandler) CreatePhase(c *gin.Context) {
	var in models.CreatePhaseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	phase, err := h.lookups.CreatePhase(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, phase)
}

// SetPhaseActive toggles a phase in and out of pick lists. Entities that
// already reference the phase keep resolving it.
// PUT /api/v1/phases/:id/active
func (h *LookupHandler) SetPhaseActive(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.lookups.SetPhaseActive(c.Request.Context(), id, *req.IsActive); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListStatuses returns the active statuses for one lookup domain.
// GET /api/v1/statuses?type=demand|project
func (h *LookupHandler) ListStatuses(c *gin.Context) {
	statuses, err := h.lookups.ListStatuses(c.Request.Context(), models.LookupType(c.Query("type")))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if statuses == nil {
		statuses = []*models.Status{}
	}
	c.JSON(http.StatusOK, statuses)
}

// CreateStatus adds a status to a lookup domain.
// POST /api/v1/statuses
func (h *LookupHandler) CreateStatus(c *gin.Context) {
	var in models.CreateStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status, err := h.lookups.CreateStatus(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, status)
}

// SetStatusActive toggles a status in and out of pick lists.
// PUT /api/v1/statuses/:id/active
func (h *LookupHandler) SetStatusActive(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.lookups.SetStatusActive(c.Request.Context(), id, *req.IsActive); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
