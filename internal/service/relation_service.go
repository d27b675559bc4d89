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

// RelationService manages the project-product join and project assignments.
type RelationService struct {
	relations RelationStore
	projects  ProjectStore
	products  ProductStore
	users     UserStore
	logger    *logger.Logger
}

// NewRelationService creates a new relation service.
func NewRelationService(relations RelationStore, projects ProjectStore, products ProductStore, users UserStore, log *logger.Logger) *RelationService {
	return &RelationService{
		relations: relations,
		projects:  projects,
		products:  products,
		users:     users,
		logger:    log,
	}
}

// ListProjectProducts returns links filtered by projectId and/or productId.
func (s *RelationService) ListProjectProducts(ctx context.Context, projectID, productID *uuid.UUID) ([]*models.ProjectProduct, error) {
	return s.relations.ListProjectProducts(ctx, repository.ProjectProductFilters{
		ProjectID: projectID,
		ProductID: productID,
	})
}

// CreateProjectProduct validates both endpoints and inserts the link.
func (s *RelationService) CreateProjectProduct(ctx context.Context, in *models.CreateProjectProductInput) (*models.ProjectProduct, error) {
	if err := validation.ValidateCreateProjectProduct(in); err != nil {
		return nil, err
	}
	if _, err := s.projects.GetByID(ctx, in.ProjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fieldError("projectId", "project not found")
		}
		return nil, err
	}
	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fieldError("productId", "product not found")
		}
		return nil, err
	}

	link := &models.ProjectProduct{
		ID:        uuid.New(),
		ProjectID: in.ProjectID,
		ProductID: in.ProductID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.relations.CreateProjectProduct(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// DeleteProjectProduct removes a link row.
func (s *RelationService) DeleteProjectProduct(ctx context.Context, id uuid.UUID) error {
	return s.relations.DeleteProjectProduct(ctx, id)
}

// ListAssignments returns assignments, scoped to a project when projectID is
// non-nil.
func (s *RelationService) ListAssignments(ctx context.Context, projectID *uuid.UUID) ([]*models.Assignment, error) {
	return s.relations.ListAssignments(ctx, projectID)
}

// CreateAssignment validates the project and user references and inserts the
// assignment.
func (s *RelationService) CreateAssignment(ctx context.Context, in *models.CreateAssignmentInput) (*models.Assignment, error) {
	if err := validation.ValidateCreateAssignment(in); err != nil {
		return nil, err
	}
	if _, err := s.projects.GetByID(ctx, in.ProjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fieldError("projectId", "project not found")
		}
		return nil, err
	}
	if err := checkUserRef(ctx, s.users, "userId", in.UserID); err != nil {
		return nil, err
	}

	a := &models.Assignment{
		ID:         uuid.New(),
		ProjectID:  in.ProjectID,
		UserID:     in.UserID,
		Role:       models.DefaultAssignmentRole,
		AssignedAt: time.Now().UTC(),
	}
	if in.Role != nil {
		a.Role = *in.Role
	}

	if err := s.relations.CreateAssignment(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAssignment removes an assignment row.
func (s *RelationService) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	return s.relations.DeleteAssignment(ctx, id)
}
