package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a funded, scheduled initiative under a program. DemandID records
// provenance when the project originated from a demand; the reference is not
// cascaded, so it may dangle after the demand is deleted.
type Project struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Description      *string    `json:"description,omitempty"`
	ProgramID        uuid.UUID  `json:"programId"`
	DemandID         *uuid.UUID `json:"demandId,omitempty"`
	PhaseID          *uuid.UUID `json:"phaseId,omitempty"`
	StatusID         *uuid.UUID `json:"statusId,omitempty"`
	OwnerID          uuid.UUID  `json:"ownerId"`
	ProjectManagerID *uuid.UUID `json:"projectManagerId,omitempty"`
	Priority         Priority   `json:"priority"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	Budget           *int64     `json:"budget,omitempty"`
	Progress         int        `json:"progress"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// CreateProjectInput is the create payload for projects.
type CreateProjectInput struct {
	Title            string     `json:"title"`
	Description      *string    `json:"description,omitempty"`
	ProgramID        uuid.UUID  `json:"programId"`
	DemandID         *uuid.UUID `json:"demandId,omitempty"`
	PhaseID          *uuid.UUID `json:"phaseId,omitempty"`
	StatusID         *uuid.UUID `json:"statusId,omitempty"`
	ProjectManagerID *uuid.UUID `json:"projectManagerId,omitempty"`
	Priority         *Priority  `json:"priority,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	Budget           *int64     `json:"budget,omitempty"`
	Progress         *int       `json:"progress,omitempty"`
}

// UpdateProjectInput is the partial-update payload for projects.
type UpdateProjectInput struct {
	Title            *string    `json:"title,omitempty"`
	Description      *string    `json:"description,omitempty"`
	ProgramID        *uuid.UUID `json:"programId,omitempty"`
	DemandID         *uuid.UUID `json:"demandId,omitempty"`
	PhaseID          *uuid.UUID `json:"phaseId,omitempty"`
	StatusID         *uuid.UUID `json:"statusId,omitempty"`
	ProjectManagerID *uuid.UUID `json:"projectManagerId,omitempty"`
	Priority         *Priority  `json:"priority,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	Budget           *int64     `json:"budget,omitempty"`
	Progress         *int       `json:"progress,omitempty"`
}
