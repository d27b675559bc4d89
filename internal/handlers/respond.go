package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/repository"
	"github.com/stratify/stratify/internal/service"
	"github.com/stratify/stratify/internal/validation"
)

// respondError maps service and repository errors onto the HTTP taxonomy.
// Raw storage errors are logged with context and surfaced as a generic 500.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	var verrs *validation.Errors

	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs.Fields})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, repository.ErrHasChildren):
		c.JSON(http.StatusConflict, gin.H{"error": "Resource still has child records"})
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "Resource already exists"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	default:
		log.Error("request failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// parseIDParam parses the :id route parameter, responding 400 on failure.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []validation.FieldError{{Field: "id", Message: "must be a valid id"}}})
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalUUIDQuery parses an optional uuid query parameter, responding
// 400 on malformed input. A missing parameter yields nil.
func parseOptionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []validation.FieldError{{Field: name, Message: "must be a valid id"}}})
		return nil, false
	}
	return &id, true
}
