package service

import (
	"context"

	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/repository"
)

// AuditService exposes the change-history trail. Entries are written by the
// entity services inside their mutation transactions; this service only
// reads them.
type AuditService struct {
	audit  AuditStore
	logger *logger.Logger
}

// NewAuditService creates a new audit service.
func NewAuditService(audit AuditStore, log *logger.Logger) *AuditService {
	return &AuditService{audit: audit, logger: log}
}

// List returns audit rows newest first. Filters combine with AND when both
// are supplied. The entity id filter works even for entities that have since
// been deleted.
func (s *AuditService) List(ctx context.Context, entityID, entityType string, limit, offset int) ([]*models.AuditLog, error) {
	return s.audit.List(ctx, repository.AuditFilters{
		EntityID:   entityID,
		EntityType: entityType,
		Limit:      limit,
		Offset:     offset,
	})
}
