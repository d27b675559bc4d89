package models

import (
	"time"

	"github.com/google/uuid"
)

// Priority ranks demands and projects.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ValidPriority reports whether p is a known priority.
func ValidPriority(p Priority) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Demand is a proposed initiative under a program, tracked through
// demand-typed phases and statuses before it becomes a funded project.
type Demand struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	ProgramID       uuid.UUID  `json:"programId"`
	PhaseID         *uuid.UUID `json:"phaseId,omitempty"`
	StatusID        *uuid.UUID `json:"statusId,omitempty"`
	OwnerID         uuid.UUID  `json:"ownerId"`
	Priority        Priority   `json:"priority"`
	RequestedDate   time.Time  `json:"requestedDate"`
	EstimatedEffort *int       `json:"estimatedEffort,omitempty"`
	BusinessValue   *string    `json:"businessValue,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// CreateDemandInput is the create payload for demands.
type CreateDemandInput struct {
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	ProgramID       uuid.UUID  `json:"programId"`
	PhaseID         *uuid.UUID `json:"phaseId,omitempty"`
	StatusID        *uuid.UUID `json:"statusId,omitempty"`
	Priority        *Priority  `json:"priority,omitempty"`
	RequestedDate   *time.Time `json:"requestedDate,omitempty"`
	EstimatedEffort *int       `json:"estimatedEffort,omitempty"`
	BusinessValue   *string    `json:"businessValue,omitempty"`
}

// UpdateDemandInput is the partial-update payload for demands.
type UpdateDemandInput struct {
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	ProgramID       *uuid.UUID `json:"programId,omitempty"`
	PhaseID         *uuid.UUID `json:"phaseId,omitempty"`
	StatusID        *uuid.UUID `json:"statusId,omitempty"`
	Priority        *Priority  `json:"priority,omitempty"`
	RequestedDate   *time.Time `json:"requestedDate,omitempty"`
	EstimatedEffort *int       `json:"estimatedEffort,omitempty"`
	BusinessValue   *string    `json:"businessValue,omitempty"`
}
