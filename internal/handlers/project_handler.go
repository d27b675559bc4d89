package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/middleware"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/service"
)

// ProjectHandler handles project endpoints, including the nested
// product-link and assignment collections.
type ProjectHandler struct {
	projects  *service.ProjectService
	relations *service.RelationService
	logger    *logger.Logger
}

func NewProjectHandler(projects *service.ProjectService, relations *service.RelationService, log *logger.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, relations: relations, logger: log}
}

// RegisterRoutes registers all project routes.
func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	{
		projects.GET("", h.List)
		projects.POST("", h.Create)
		projects.GET("/:id", h.Get)
		projects.PUT("/:id", h.Update)
		projects.DELETE("/:id", h.Delete)
		projects.GET("/:id/products", h.ListProducts)
		projects.GET("/:id/assignments", h.ListAssignments)
	}
}

// List returns projects, optionally scoped to one program.
// GET /api/v1/projects?programId=
func (h *ProjectHandler) List(c *gin.Context) {
	programID, ok := parseOptionalUUIDQuery(c, "programId")
	if !ok {
		return
	}
	projects, err := h.projects.List(c.Request.Context(), programID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if projects == nil {
		projects = []*models.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

// Get returns a single project by id.
// GET /api/v1/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	project, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Create creates a project under an existing program.
// POST /api/v1/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var in models.CreateProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	project, err := h.projects.Create(c.Request.Context(), actor, &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// Update applies a partial update to a project.
// PUT /api/v1/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var in models.UpdateProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	project, err := h.projects.Update(c.Request.Context(), actor, id, &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Delete removes a project along with its product links and assignments.
// DELETE /api/v1/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListProducts returns the product links for one project.
// GET /api/v1/projects/:id/products
func (h *ProjectHandler) ListProducts(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	links, err := h.relations.ListProjectProducts(c.Request.Context(), &id, nil)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if links == nil {
		links = []*models.ProjectProduct{}
	}
	c.JSON(http.StatusOK, links)
}

// ListAssignments returns the team assignments for one project.
// GET /api/v1/projects/:id/assignments
func (h *ProjectHandler) ListAssignments(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	assignments, err := h.relations.ListAssignments(c.Request.Context(), &id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if assignments == nil {
		assignments = []*models.Assignment{}
	}
	c.JSON(http.StatusOK, assignments)
}
