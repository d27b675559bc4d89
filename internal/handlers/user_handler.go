package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/middleware"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/service"
)

// UserHandler handles user lookup, search and role management endpoints.
type UserHandler struct {
	users  *service.UserService
	logger *logger.Logger
}

func NewUserHandler(users *service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{users: users, logger: log}
}

// RegisterRoutes registers the user routes. The role update route must
// additionally sit behind the admin middleware; see server wiring.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	users := rg.Group("/users")
	{
		users.GET("/search", h.Search)
		users.GET("/:id", h.Get)
		users.PUT("/:id/role", admin, h.UpdateRole)
	}
}

// Get returns a single user by id.
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Search matches users by name or email fragment. An empty query returns
// an empty list.
// GET /api/v1/users/search?q=
func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.users.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	c.JSON(http.StatusOK, users)
}

type updateRoleRequest struct {
	Role models.UserRole `json:"role"`
}

// UpdateRole changes a user's role. Admin only.
// PUT /api/v1/users/:id/role
func (h *UserHandler) UpdateRole(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.users.UpdateRole(c.Request.Context(), actor, id, req.Role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
