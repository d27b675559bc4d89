package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/middleware"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/service"
)

// ProgramHandler handles program endpoints.
type ProgramHandler struct {
	programs *service.ProgramService
	logger   *logger.Logger
}

func NewProgramHandler(programs *service.ProgramService, log *logger.Logger) *ProgramHandler {
	return &ProgramHandler{programs: programs, logger: log}
}

// RegisterRoutes registers all program routes.
func (h *ProgramHandler) RegisterRoutes(rg *gin.RouterGroup) {
	programs := rg.Group("/programs")
	{
		programs.GET("", h.List)
		programs.POST("", h.Create)
		programs.GET("/:id", h.Get)
		programs.PUT("/:id", h.Update)
		programs.DELETE("/:id", h.Delete)
	}
}

// List returns programs, optionally scoped to one portfolio.
// GET /api/v1/programs?portfolioId=
func (h *ProgramHandler) List(c *gin.Context) {
	portfolioID, ok := parseOptionalUUIDQuery(c, "portfolioId")
	if !ok {
		return
	}
	programs, err := h.programs.List(c.Request.Context(), portfolioID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if programs == nil {
		programs = []*models.Program{}
	}
	c.JSON(http.StatusOK, programs)
}

// Get returns a single program by id.
// GET /api/v1/programs/:id
func (h *ProgramHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	program, err := h.programs.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

// Create creates a program under an existing portfolio.
// POST /api/v1/programs
func (h *ProgramHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var in models.CreateProgramInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	program, err := h.programs.Create(c.Request.Context(), actor, &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, program)
}

// Update applies a partial update to a program.
// PUT /api/v1/programs/:id
func (h *ProgramHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var in models.UpdateProgramInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	program, err := h.programs.Update(c.Request.Context(), actor, id, &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

// Delete removes a program with no remaining demands, projects or products.
// DELETE /api/v1/programs/:id
func (h *ProgramHandler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.programs.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
