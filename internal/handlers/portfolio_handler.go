package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/middleware"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/service"
)

// PortfolioHandler handles portfolio endpoints.
type PortfolioHandler struct {
	portfolios *service.PortfolioService
	logger     *logger.Logger
}

func NewPortfolioHandler(portfolios *service.PortfolioService, log *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolios: portfolios, logger: log}
}

// RegisterRoutes registers all portfolio routes.
func (h *PortfolioHandler) RegisterRoutes(rg *gin.RouterGroup) {
	portfolios := rg.Group("/portfolios")
	{
		portfolios.GET("", h.List)
		portfolios.POST("", h.Create)
		portfolios.GET("/:id", h.Get)
		portfolios.PUT("/:id", h.Update)
		portfolios.DELETE("/:id", h.Delete)
	}
}

// List returns all portfolios.
// GET /api/v1/portfolios
func (h *PortfolioHandler) List(c *gin.Context) {
	portfolios, err := h.portfolios.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if portfolios == nil {
		portfolios = []*models.Portfolio{}
	}
	c.JSON(http.StatusOK, portfolios)
}

// Get returns a single portfolio by id.
// GET /api/v1/portfolios/:id
func (h *PortfolioHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	portfolio, err := h.portfolios.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// Create creates a portfolio owned by the current actor.
// POST /api/v1/portfolios
func (h *PortfolioHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var in models.CreatePortfolioInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	portfolio, err := h.portfolios.Create(c.Request.Context(), actor, &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, portfolio)
}

// Update applies a partial update to a portfolio.
// PUT /api/v1/portfolios/:id
func (h *PortfolioHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var in models.UpdatePortfolioInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	portfolio, err := h.portfolios.Update(c.Request.Context(), actor, id, &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// Delete removes a portfolio with no remaining programs.
// DELETE /api/v1/portfolios/:id
func (h *PortfolioHandler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.portfolios.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
