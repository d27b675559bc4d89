package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectProduct links a project to a product it delivers or depends on.
type ProjectProduct struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"projectId"`
	ProductID uuid.UUID `json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateProjectProductInput is the create payload for project-product links.
type CreateProjectProductInput struct {
	ProjectID uuid.UUID `json:"projectId"`
	ProductID uuid.UUID `json:"productId"`
}

// DefaultAssignmentRole is applied when an assignment is created without a role.
const DefaultAssignmentRole = "team_member"

// Assignment places a user on a project team with a free-form role label.
type Assignment struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"projectId"`
	UserID     uuid.UUID `json:"userId"`
	Role       string    `json:"role"`
	AssignedAt time.Time `json:"assignedAt"`
}

// CreateAssignmentInput is the create payload for assignments.
type CreateAssignmentInput struct {
	ProjectID uuid.UUID `json:"projectId"`
	UserID    uuid.UUID `json:"userId"`
	Role      *string   `json:"role,omitempty"`
}
