package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/validation"
)

// PortfolioService implements portfolio CRUD with audit pairing.
type PortfolioService struct {
	portfolios PortfolioStore
	logger     *logger.Logger
}

// NewPortfolioService creates a new portfolio service.
func NewPortfolioService(portfolios PortfolioStore, log *logger.Logger) *PortfolioService {
	return &PortfolioService{portfolios: portfolios, logger: log}
}

// List returns all portfolios ordered by name. Callers needing scoping must
// filter on their side; the service performs no implicit access-scoping.
func (s *PortfolioService) List(ctx context.Context) ([]*models.Portfolio, error) {
	return s.portfolios.List(ctx)
}

// Get returns a single portfolio.
func (s *PortfolioService) Get(ctx context.Context, id uuid.UUID) (*models.Portfolio, error) {
	return s.portfolios.GetByID(ctx, id)
}

// Create validates the payload, stamps ownership from the actor and persists
// the portfolio together with its audit entry.
func (s *PortfolioService) Create(ctx context.Context, actor models.Actor, in *models.CreatePortfolioInput) (*models.Portfolio, error) {
	if err := validation.ValidateCreatePortfolio(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &models.Portfolio{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     actor.ID,
		Status:      models.InvestmentActive,
		Budget:      centsFromMajor(in.Budget),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Status != nil {
		p.Status = *in.Status
	}

	entry := models.NewAuditLog(models.EntityPortfolio, p.ID, models.ChangeCreated, actor.ID, models.CreatedDetails(p))
	if err := s.portfolios.Create(ctx, p, entry); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies the supplied fields, refreshes updatedAt and records a diff
// audit entry. A patch touching status is tagged status_changed.
func (s *PortfolioService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, in *models.UpdatePortfolioInput) (*models.Portfolio, error) {
	if err := validation.ValidateUpdatePortfolio(in); err != nil {
		return nil, err
	}

	p, err := s.portfolios.GetByID(ctx, id)
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

	entry := models.NewAuditLog(models.EntityPortfolio, p.ID, changeType, actor.ID, models.UpdatedDetails(diff))
	if err := s.portfolios.Update(ctx, p, entry); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete hard-deletes the portfolio and records the audit entry. Portfolios
// with programs attached are refused with ErrHasChildren.
func (s *PortfolioService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	entry := models.NewAuditLog(models.EntityPortfolio, id, models.ChangeDeleted, actor.ID, models.DeletedDetails(id))
	return s.portfolios.Delete(ctx, id, entry)
}
