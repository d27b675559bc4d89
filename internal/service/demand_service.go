package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/validation"
)

// DemandService implements demand CRUD with audit pairing, parent validation
// and demand-typed lookup enforcement.
type DemandService struct {
	demands  DemandStore
	programs ProgramStore
	lookups  LookupStore
	logger   *logger.Logger
}

// NewDemandService creates a new demand service.
func NewDemandService(demands DemandStore, programs ProgramStore, lookups LookupStore, log *logger.Logger) *DemandService {
	return &DemandService{demands: demands, programs: programs, lookups: lookups, logger: log}
}

// List returns demands newest first, scoped to a program when programID is
// non-nil.
func (s *DemandService) List(ctx context.Context, programID *uuid.UUID) ([]*models.Demand, error) {
	return s.demands.List(ctx, programID)
}

// Get returns a single demand.
func (s *DemandService) Get(ctx context.Context, id uuid.UUID) (*models.Demand, error) {
	return s.demands.GetByID(ctx, id)
}

// Create validates the payload and references, stamps ownership from the
// actor and persists the demand with its audit entry.
func (s *DemandService) Create(ctx context.Context, actor models.Actor, in *models.CreateDemandInput) (*models.Demand, error) {
	if err := validation.ValidateCreateDemand(in); err != nil {
		return nil, err
	}
	if err := checkProgramRef(ctx, s.programs, in.ProgramID); err != nil {
		return nil, err
	}
	if in.PhaseID != nil {
		if err := checkPhaseRef(ctx, s.lookups, *in.PhaseID, models.LookupDemand); err != nil {
			return nil, err
		}
	}
	if in.StatusID != nil {
		if err := checkStatusRef(ctx, s.lookups, *in.StatusID, models.LookupDemand); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	d := &models.Demand{
		ID:              uuid.New(),
		Title:           in.Title,
		Description:     in.Description,
		ProgramID:       in.ProgramID,
		PhaseID:         in.PhaseID,
		StatusID:        in.StatusID,
		OwnerID:         actor.ID,
		Priority:        models.PriorityMedium,
		RequestedDate:   now,
		EstimatedEffort: in.EstimatedEffort,
		BusinessValue:   in.BusinessValue,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.Priority != nil {
		d.Priority = *in.Priority
	}
	if in.RequestedDate != nil {
		d.RequestedDate = *in.RequestedDate
	}

	entry := models.NewAuditLog(models.EntityDemand, d.ID, models.ChangeCreated, actor.ID, models.CreatedDetails(d))
	if err := s.demands.Create(ctx, d, entry); err != nil {
		return nil, err
	}
	return d, nil
}

// Update applies the supplied fields, refreshes updatedAt and records a diff
// audit entry. A patch touching statusId is tagged status_changed.
func (s *DemandService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, in *models.UpdateDemandInput) (*models.Demand, error) {
	if err := validation.ValidateUpdateDemand(in); err != nil {
		return nil, err
	}

	d, err := s.demands.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	diff := map[string]interface{}{}
	changeType := models.ChangeUpdated

	if in.Title != nil {
		d.Title = *in.Title
		diff["title"] = *in.Title
	}
	if in.Description != nil {
		d.Description = in.Description
		diff["description"] = *in.Description
	}
	if in.ProgramID != nil {
		if err := checkProgramRef(ctx, s.programs, *in.ProgramID); err != nil {
			return nil, err
		}
		d.ProgramID = *in.ProgramID
		diff["programId"] = in.ProgramID.String()
	}
	if in.PhaseID != nil {
		if err := checkPhaseRef(ctx, s.lookups, *in.PhaseID, models.LookupDemand); err != nil {
			return nil, err
		}
		d.PhaseID = in.PhaseID
		diff["phaseId"] = in.PhaseID.String()
	}
	if in.StatusID != nil {
		if err := checkStatusRef(ctx, s.lookups, *in.StatusID, models.LookupDemand); err != nil {
			return nil, err
		}
		d.StatusID = in.StatusID
		diff["statusId"] = in.StatusID.String()
		changeType = models.ChangeStatusChanged
	}
	if in.Priority != nil {
		d.Priority = *in.Priority
		diff["priority"] = *in.Priority
	}
	if in.RequestedDate != nil {
		d.RequestedDate = *in.RequestedDate
		diff["requestedDate"] = *in.RequestedDate
	}
	if in.EstimatedEffort != nil {
		d.EstimatedEffort = in.EstimatedEffort
		diff["estimatedEffort"] = *in.EstimatedEffort
	}
	if in.BusinessValue != nil {
		d.BusinessValue = in.BusinessValue
		diff["businessValue"] = *in.BusinessValue
	}
	d.UpdatedAt = time.Now().UTC()

	entry := models.NewAuditLog(models.EntityDemand, d.ID, changeType, actor.ID, models.UpdatedDetails(diff))
	if err := s.demands.Update(ctx, d, entry); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete hard-deletes the demand and records the audit entry. Projects
// created from the demand keep their provenance reference.
func (s *DemandService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	entry := models.NewAuditLog(models.EntityDemand, id, models.ChangeDeleted, actor.ID, models.DeletedDetails(id))
	return s.demands.Delete(ctx, id, entry)
}
