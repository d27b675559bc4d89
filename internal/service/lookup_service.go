package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/validation"
)

// LookupService manages the phase and status reference tables. Rows are
// curated, never destroyed: removal is modeled as isActive=false so entities
// referencing a retired row still resolve it by id.
type LookupService struct {
	lookups LookupStore
	logger  *logger.Logger
}

// NewLookupService creates a new lookup service.
func NewLookupService(lookups LookupStore, log *logger.Logger) *LookupService {
	return &LookupService{lookups: lookups, logger: log}
}

func validateListType(lookupType models.LookupType) error {
	if lookupType != "" && !models.ValidLookupType(lookupType) {
		return fieldError("type", "must be one of [demand project]")
	}
	return nil
}

// ListPhases returns active phases in display order, optionally scoped to a
// lookup type.
func (s *LookupService) ListPhases(ctx context.Context, lookupType models.LookupType) ([]*models.Phase, error) {
	if err := validateListType(lookupType); err != nil {
		return nil, err
	}
	return s.lookups.ListPhases(ctx, lookupType)
}

// GetPhase resolves a phase by id regardless of its active flag.
func (s *LookupService) GetPhase(ctx context.Context, id uuid.UUID) (*models.Phase, error) {
	return s.lookups.GetPhaseByID(ctx, id)
}

// CreatePhase validates and inserts a phase. Duplicate (name, type) pairs are
// allowed; phases are a small curated set.
func (s *LookupService) CreatePhase(ctx context.Context, in *models.CreatePhaseInput) (*models.Phase, error) {
	if err := validation.ValidateCreatePhase(in); err != nil {
		return nil, err
	}

	p := &models.Phase{
		ID:        uuid.New(),
		Name:      in.Name,
		Type:      in.Type,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.lookups.CreatePhase(ctx, p, in.Order); err != nil {
		return nil, err
	}
	return p, nil
}

// SetPhaseActive flips a phase's soft-disable flag.
func (s *LookupService) SetPhaseActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.lookups.SetPhaseActive(ctx, id, active)
}

// ListStatuses returns active statuses ordered by name, optionally scoped to
// a lookup type.
func (s *LookupService) ListStatuses(ctx context.Context, lookupType models.LookupType) ([]*models.Status, error) {
	if err := validateListType(lookupType); err != nil {
		return nil, err
	}
	return s.lookups.ListStatuses(ctx, lookupType)
}

// GetStatus resolves a status by id regardless of its active flag.
func (s *LookupService) GetStatus(ctx context.Context, id uuid.UUID) (*models.Status, error) {
	return s.lookups.GetStatusByID(ctx, id)
}

// CreateStatus validates and inserts a status row.
func (s *LookupService) CreateStatus(ctx context.Context, in *models.CreateStatusInput) (*models.Status, error) {
	if err := validation.ValidateCreateStatus(in); err != nil {
		return nil, err
	}

	st := &models.Status{
		ID:        uuid.New(),
		Name:      in.Name,
		Type:      in.Type,
		Color:     models.DefaultStatusColor,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if in.Color != nil {
		st.Color = *in.Color
	}

	if err := s.lookups.CreateStatus(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// SetStatusActive flips a status row's soft-disable flag.
func (s *LookupService) SetStatusActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.lookups.SetStatusActive(ctx, id, active)
}
