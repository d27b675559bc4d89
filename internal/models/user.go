package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole is the application-level role assigned to a user.
type UserRole string

const (
	RoleAdmin            UserRole = "admin"
	RolePortfolioManager UserRole = "portfolio_manager"
	RoleProgramManager   UserRole = "program_manager"
	RoleProjectManager   UserRole = "project_manager"
	RoleContributor      UserRole = "contributor"
)

// UserRoles lists every valid role value.
var UserRoles = []UserRole{
	RoleAdmin,
	RolePortfolioManager,
	RoleProgramManager,
	RoleProjectManager,
	RoleContributor,
}

// ValidUserRole reports whether r is a known role.
func ValidUserRole(r UserRole) bool {
	for _, v := range UserRoles {
		if v == r {
			return true
		}
	}
	return false
}

// User represents an authenticated identity. Rows are upserted on first
// sign-in: insert if absent, otherwise update every field except id and role.
type User struct {
	ID              uuid.UUID `json:"id"`
	Email           *string   `json:"email,omitempty"`
	FirstName       *string   `json:"firstName,omitempty"`
	LastName        *string   `json:"lastName,omitempty"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty"`
	Role            UserRole  `json:"role"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DisplayName returns "First Last", falling back to the email and then to
// the id when names are absent.
func (u *User) DisplayName() string {
	var name string
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	if name != "" {
		return name
	}
	if u.Email != nil && *u.Email != "" {
		return *u.Email
	}
	return u.ID.String()
}

// UpsertUserInput carries the identity fields synced from the identity
// provider on sign-in.
type UpsertUserInput struct {
	ID              uuid.UUID `json:"id"`
	Email           *string   `json:"email,omitempty"`
	FirstName       *string   `json:"firstName,omitempty"`
	LastName        *string   `json:"lastName,omitempty"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty"`
}

// Actor is the authenticated identity attached to a request. Its ID becomes
// ownerId on created entities and changedBy on audit entries.
type Actor struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email,omitempty"`
	Name  string    `json:"name,omitempty"`
	Role  UserRole  `json:"role"`
}
