package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/models"
)

// userSearchLimit caps search results.
const userSearchLimit = 20

// UserService implements identity sync, search and role management.
type UserService struct {
	users  UserStore
	logger *logger.Logger
}

// NewUserService creates a new user service.
func NewUserService(users UserStore, log *logger.Logger) *UserService {
	return &UserService{users: users, logger: log}
}

// Get returns a single user.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// Upsert syncs the identity fields from the identity provider. New users get
// the contributor role; re-signing in updates every field except id and role.
func (s *UserService) Upsert(ctx context.Context, in *models.UpsertUserInput) (*models.User, error) {
	if in.ID == uuid.Nil {
		return nil, fieldError("id", "is required")
	}

	u := &models.User{
		ID:              in.ID,
		Email:           in.Email,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		ProfileImageURL: in.ProfileImageURL,
		Role:            models.RoleContributor,
	}
	return s.users.Upsert(ctx, u)
}

// Search returns up to 20 users matching q on first name, last name or
// email. An empty query short-circuits without touching storage.
func (s *UserService) Search(ctx context.Context, q string) ([]*models.User, error) {
	if q == "" {
		return []*models.User{}, nil
	}
	return s.users.Search(ctx, q, userSearchLimit)
}

// UpdateRole changes a user's role. Only admins may call it; the change is
// audited like any other mutation.
func (s *UserService) UpdateRole(ctx context.Context, actor models.Actor, id uuid.UUID, role models.UserRole) (*models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	if !models.ValidUserRole(role) {
		return nil, fieldError("role", "must be one of [admin portfolio_manager program_manager project_manager contributor]")
	}

	entry := models.NewAuditLog(models.EntityUser, id, models.ChangeUpdated, actor.ID,
		models.UpdatedDetails(map[string]interface{}{"role": role}))
	return s.users.UpdateRole(ctx, id, role, entry)
}
