package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/repository"
	"github.com/stratify/stratify/internal/validation"
)

// ProgramService implements program CRUD with audit pairing and parent
// validation against the portfolio table.
type ProgramService struct {
	programs   ProgramStore
	portfolios PortfolioStore
	logger     *logger.Logger
}

// NewProgramService creates a new program service.
func NewProgramService(programs ProgramStore, portfolios PortfolioStore, log *logger.Logger) *ProgramService {
	return &ProgramService{programs: programs, portfolios: portfolios, logger: log}
}

// List returns programs ordered by name, scoped to a portfolio when
// portfolioID is non-nil.
func (s *ProgramService) List(ctx context.Context, portfolioID *uuid.UUID) ([]*models.Program, error) {
	return s.programs.List(ctx, portfolioID)
}

// Get returns a single program.
func (s *ProgramService) Get(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	return s.programs.GetByID(ctx, id)
}

// Create validates the payload and the parent portfolio, stamps ownership
// from the actor and persists the program with its audit entry.
func (s *ProgramService) Create(ctx context.Context, actor models.Actor, in *models.CreateProgramInput) (*models.Program, error) {
	if err := validation.ValidateCreateProgram(in); err != nil {
		return nil, err
	}
	if err := s.checkPortfolio(ctx, in.PortfolioID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &models.Program{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		PortfolioID: in.PortfolioID,
		OwnerID:     actor.ID,
		Status:      models.InvestmentActive,
		Budget:      centsFromMajor(in.Budget),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Status != nil {
		p.Status = *in.Status
	}

	entry := models.NewAuditLog(models.EntityProgram, p.ID, models.ChangeCreated, actor.ID, models.CreatedDetails(p))
	if err := s.programs.Create(ctx, p, entry); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies the supplied fields, refreshes updatedAt and records a diff
// audit entry.
func (s *ProgramService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, in *models.UpdateProgramInput) (*models.Program, error) {
	if err := validation.ValidateUpdateProgram(in); err != nil {
		return nil, err
	}

	p, err := s.programs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	diff := map[string]interface{}{}
	changeType := models.ChangeUpdated

	if in.Name != nil {
		p.Name = *in.Name
		diff["name"] = *in.Name
	}
	if in.Description != nil {
		p.Description = in.Description
		diff["description"] = *in.Description
	}
	if in.PortfolioID != nil {
		if err := s.checkPortfolio(ctx, *in.PortfolioID); err != nil {
			return nil, err
		}
		p.PortfolioID = *in.PortfolioID
		diff["portfolioId"] = in.PortfolioID.String()
	}
	if in.Status != nil {
		p.Status = *in.Status
		diff["status"] = *in.Status
		changeType = models.ChangeStatusChanged
	}
	if in.Budget != nil {
		p.Budget = centsFromMajor(in.Budget)
		diff["budget"] = *p.Budget
	}
	p.UpdatedAt = time.Now().UTC()

	entry := models.NewAuditLog(models.EntityProgram, p.ID, changeType, actor.ID, models.UpdatedDetails(diff))
	if err := s.programs.Update(ctx, p, entry); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete hard-deletes the program and records the audit entry. Programs with
// demands, projects or products attached are refused with ErrHasChildren.
func (s *ProgramService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	entry := models.NewAuditLog(models.EntityProgram, id, models.ChangeDeleted, actor.ID, models.DeletedDetails(id))
	return s.programs.Delete(ctx, id, entry)
}

func (s *ProgramService) checkPortfolio(ctx context.Context, id uuid.UUID) error {
	if _, err := s.portfolios.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errs := &validation.Errors{}
			errs.Add("portfolioId", "portfolio not found")
			return errs
		}
		return err
	}
	return nil
}
