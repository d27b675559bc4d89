package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/repository"
)

// ErrForbidden is returned when the acting user lacks the role a restricted
// operation requires.
var ErrForbidden = errors.New("forbidden")

// Store interfaces consumed by the services. The repository package provides
// the production implementations; tests substitute in-memory fakes.

// PortfolioStore persists portfolios with paired audit entries.
type PortfolioStore interface {
	List(ctx context.Context) ([]*models.Portfolio, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Portfolio, error)
	Create(ctx context.Context, p *models.Portfolio, entry *models.AuditLog) error
	Update(ctx context.Context, p *models.Portfolio, entry *models.AuditLog) error
	Delete(ctx context.Context, id uuid.UUID, entry *models.AuditLog) error
}

// ProgramStore persists programs with paired audit entries.
type ProgramStore interface {
	List(ctx context.Context, portfolioID *uuid.UUID) ([]*models.Program, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Program, error)
	Create(ctx context.Context, p *models.Program, entry *models.AuditLog) error
	Update(ctx context.Context, p *models.Program, entry *models.AuditLog) error
	Delete(ctx context.Context, id uuid.UUID, entry *models.AuditLog) error
}

// DemandStore persists demands with paired audit entries.
type DemandStore interface {
	List(ctx context.Context, programID *uuid.UUID) ([]*models.Demand, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Demand, error)
	Create(ctx context.Context, d *models.Demand, entry *models.AuditLog) error
	Update(ctx context.Context, d *models.Demand, entry *models.AuditLog) error
	Delete(ctx context.Context, id uuid.UUID, entry *models.AuditLog) error
	CountByStatusNames(ctx context.Context, names []string) (int64, error)
}

// ProjectStore persists projects with paired audit entries.
type ProjectStore interface {
	List(ctx context.Context, programID *uuid.UUID) ([]*models.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Create(ctx context.Context, p *models.Project, entry *models.AuditLog) error
	Update(ctx context.Context, p *models.Project, entry *models.AuditLog) error
	Delete(ctx context.Context, id uuid.UUID, entry *models.AuditLog) error
	CountByStatusNames(ctx context.Context, names []string) (int64, error)
}

// ProductStore persists products with paired audit entries.
type ProductStore interface {
	List(ctx context.Context, programID *uuid.UUID) ([]*models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, p *models.Product, entry *models.AuditLog) error
	Update(ctx context.Context, p *models.Product, entry *models.AuditLog) error
	Delete(ctx context.Context, id uuid.UUID, entry *models.AuditLog) error
}

// LookupStore persists the phase and status reference tables.
type LookupStore interface {
	ListPhases(ctx context.Context, lookupType models.LookupType) ([]*models.Phase, error)
	GetPhaseByID(ctx context.Context, id uuid.UUID) (*models.Phase, error)
	CreatePhase(ctx context.Context, p *models.Phase, order *int) error
	SetPhaseActive(ctx context.Context, id uuid.UUID, active bool) error
	ListStatuses(ctx context.Context, lookupType models.LookupType) ([]*models.Status, error)
	GetStatusByID(ctx context.Context, id uuid.UUID) (*models.Status, error)
	CreateStatus(ctx context.Context, s *models.Status) error
	SetStatusActive(ctx context.Context, id uuid.UUID, active bool) error
}

// UserStore persists users.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Upsert(ctx context.Context, u *models.User) (*models.User, error)
	Search(ctx context.Context, q string, limit int) ([]*models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role models.UserRole, entry *models.AuditLog) (*models.User, error)
}

// AuditStore reads audit rows. Writes happen inside the entity
// transactions, never through this interface.
type AuditStore interface {
	List(ctx context.Context, filters repository.AuditFilters) ([]*models.AuditLog, error)
}

// RelationStore persists project-product links and assignments.
type RelationStore interface {
	ListProjectProducts(ctx context.Context, filters repository.ProjectProductFilters) ([]*models.ProjectProduct, error)
	CreateProjectProduct(ctx context.Context, link *models.ProjectProduct) error
	DeleteProjectProduct(ctx context.Context, id uuid.UUID) error
	ListAssignments(ctx context.Context, projectID *uuid.UUID) ([]*models.Assignment, error)
	CreateAssignment(ctx context.Context, a *models.Assignment) error
	DeleteAssignment(ctx context.Context, id uuid.UUID) error
}

// centsFromMajor converts a budget supplied in major currency units to the
// stored minor-unit (cent) representation.
func centsFromMajor(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v * 100
	return &c
}
