package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/validation"
)

// ProductService implements product CRUD with audit pairing and parent
// validation.
type ProductService struct {
	products ProductStore
	programs ProgramStore
	logger   *logger.Logger
}

// NewProductService creates a new product service.
func NewProductService(products ProductStore, programs ProgramStore, log *logger.Logger) *ProductService {
	return &ProductService{products: products, programs: programs, logger: log}
}

// List returns products newest first, scoped to a program when programID is
// non-nil.
func (s *ProductService) List(ctx context.Context, programID *uuid.UUID) ([]*models.Product, error) {
	return s.products.List(ctx, programID)
}

// Get returns a single product.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Create validates the payload and the parent program, stamps ownership from
// the actor and persists the product with its audit entry.
func (s *ProductService) Create(ctx context.Context, actor models.Actor, in *models.CreateProductInput) (*models.Product, error) {
	if err := validation.ValidateCreateProduct(in); err != nil {
		return nil, err
	}
	if err := checkProgramRef(ctx, s.programs, in.ProgramID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &models.Product{
		ID:            uuid.New(),
		Name:          in.Name,
		Description:   in.Description,
		ProgramID:     in.ProgramID,
		OwnerID:       actor.ID,
		Status:        models.ProductInDevelopment,
		Version:       models.DefaultProductVersion,
		LaunchDate:    in.LaunchDate,
		BusinessValue: in.BusinessValue,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Version != nil {
		p.Version = *in.Version
	}

	entry := models.NewAuditLog(models.EntityProduct, p.ID, models.ChangeCreated, actor.ID, models.CreatedDetails(p))
	if err := s.products.Create(ctx, p, entry); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies the supplied fields, refreshes updatedAt and records a diff
// audit entry. A patch touching status is tagged status_changed.
func (s *ProductService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, in *models.UpdateProductInput) (*models.Product, error) {
	if err := validation.ValidateUpdateProduct(in); err != nil {
		return nil, err
	}

	p, err := s.products.GetByID(ctx, id)
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
	if in.ProgramID != nil {
		if err := checkProgramRef(ctx, s.programs, *in.ProgramID); err != nil {
			return nil, err
		}
		p.ProgramID = *in.ProgramID
		diff["programId"] = in.ProgramID.String()
	}
	if in.Status != nil {
		p.Status = *in.Status
		diff["status"] = *in.Status
		changeType = models.ChangeStatusChanged
	}
	if in.Version != nil {
		p.Version = *in.Version
		diff["version"] = *in.Version
	}
	if in.LaunchDate != nil {
		p.LaunchDate = in.LaunchDate
		diff["launchDate"] = *in.LaunchDate
	}
	if in.BusinessValue != nil {
		p.BusinessValue = in.BusinessValue
		diff["businessValue"] = *in.BusinessValue
	}
	p.UpdatedAt = time.Now().UTC()

	entry := models.NewAuditLog(models.EntityProduct, p.ID, changeType, actor.ID, models.UpdatedDetails(diff))
	if err := s.products.Update(ctx, p, entry); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete hard-deletes the product, its project links and records the audit
// entry.
func (s *ProductService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	entry := models.NewAuditLog(models.EntityProduct, id, models.ChangeDeleted, actor.ID, models.DeletedDetails(id))
	return s.products.Delete(ctx, id, entry)
}
