package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/service"
)

// RelationHandler handles the project-product link and assignment endpoints.
type RelationHandler struct {
	relations *service.RelationService
	logger    *logger.Logger
}

func NewRelationHandler(relations *service.RelationService, log *logger.Logger) *RelationHandler {
	return &RelationHandler{relations: relations, logger: log}
}

// RegisterRoutes registers the relation routes.
func (h *RelationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	links := rg.Group("/project-products")
	{
		links.GET("", h.ListProjectProducts)
		links.POST("", h.CreateProjectProduct)
		links.DELETE("/:id", h.DeleteProjectProduct)
	}
	assignments := rg.Group("/assignments")
	{
		assignments.GET("", h.ListAssignments)
		assignments.POST("", h.CreateAssignment)
		assignments.DELETE("/:id", h.DeleteAssignment)
	}
}

// ListProjectProducts returns project-product links, optionally filtered by
// either side of the relation.
// GET /api/v1/project-products?projectId=&productId=
func (h *RelationHandler) ListProjectProducts(c *gin.Context) {
	projectID, ok := parseOptionalUUIDQuery(c, "projectId")
	if !ok {
		return
	}
	productID, ok := parseOptionalUUIDQuery(c, "productId")
	if !ok {
		return
	}
	links, err := h.relations.ListProjectProducts(c.Request.Context(), projectID, productID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if links == nil {
		links = []*models.ProjectProduct{}
	}
	c.JSON(http.StatusOK, links)
}

// CreateProjectProduct links a project to a product. Duplicate pairs conflict.
// POST /api/v1/project-products
func (h *RelationHandler) CreateProjectProduct(c *gin.Context) {
	var in models.CreateProjectProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	link, err := h.relations.CreateProjectProduct(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

// DeleteProjectProduct removes a project-product link.
// DELETE /api/v1/project-products/:id
func (h *RelationHandler) DeleteProjectProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.relations.DeleteProjectProduct(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAssignments returns assignments, optionally scoped to one project.
// GET /api/v1/assignments?projectId=
func (h *RelationHandler) ListAssignments(c *gin.Context) {
	projectID, ok := parseOptionalUUIDQuery(c, "projectId")
	if !ok {
		return
	}
	assignments, err := h.relations.ListAssignments(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if assignments == nil {
		assignments = []*models.Assignment{}
	}
	c.JSON(http.StatusOK, assignments)
}

// CreateAssignment places a user on a project team.
// POST /api/v1/assignments
func (h *RelationHandler) CreateAssignment(c *gin.Context) {
	var in models.CreateAssignmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	assignment, err := h.relations.CreateAssignment(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

// DeleteAssignment removes a user from a project team.
// DELETE /api/v1/assignments/:id
func (h *RelationHandler) DeleteAssignment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.relations.DeleteAssignment(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
