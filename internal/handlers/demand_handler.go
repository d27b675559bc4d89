package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/middleware"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/service"
)

// DemandHandler handles demand intake endpoints.
type DemandHandler struct {
	demands *service.DemandService
	logger  *logger.Logger
}

func NewDemandHandler(demands *service.DemandService, log *logger.Logger) *DemandHandler {
	return &DemandHandler{demands: demands, logger: log}
}

// RegisterRoutes registers all demand routes.
func (h *DemandHandler) RegisterRoutes(rg *gin.RouterGroup) {
	demands := rg.Group("/demands")
	{
		demands.GET("", h.List)
		demands.POST("", h.Create)
		demands.GET("/:id", h.Get)
		demands.PUT("/:id", h.Update)
		demands.DELETE("/:id", h.Delete)
	}
}

// List returns demands, optionally scoped to one program.
// GET /api/v1/demands?programId=
func (h *DemandHandler) List(c *gin.Context) {
	programID, ok := parseOptionalUUIDQuery(c, "programId")
	if !ok {
		return
	}
	demands, err := h.demands.List(c.Request.Context(), programID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if demands == nil {
		demands = []*models.Demand{}
	}
	c.JSON(http.StatusOK, demands)
}

// Get returns a single demand by id.
// GET /api/v1/demands/:id
func (h *DemandHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	demand, err := h.demands.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, demand)
}

// Create records a new demand under an existing program.
// POST /api/v1/demands
func (h *DemandHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var in models.CreateDemandInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	demand, err := h.demands.Create(c.Request.Context(), actor, &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, demand)
}

// Update applies a partial update to a demand.
// PUT /api/v1/demands/:id
func (h *DemandHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var in models.UpdateDemandInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	demand, err := h.demands.Update(c.Request.Context(), actor, id, &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, demand)
}

// Delete removes a demand. Projects that referenced it keep their demandId.
// DELETE /api/v1/demands/:id
func (h *DemandHandler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.demands.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
