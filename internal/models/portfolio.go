package models

import (
	"time"

	"github.com/google/uuid"
)

// InvestmentStatus is the lifecycle state shared by portfolios and programs.
type InvestmentStatus string

const (
	InvestmentActive    InvestmentStatus = "active"
	InvestmentOnHold    InvestmentStatus = "on_hold"
	InvestmentCompleted InvestmentStatus = "completed"
	InvestmentCancelled InvestmentStatus = "cancelled"
)

// InvestmentStatuses lists every valid portfolio/program status value.
var InvestmentStatuses = []InvestmentStatus{
	InvestmentActive,
	InvestmentOnHold,
	InvestmentCompleted,
	InvestmentCancelled,
}

// ValidInvestmentStatus reports whether s is a known status.
func ValidInvestmentStatus(s InvestmentStatus) bool {
	for _, v := range InvestmentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Portfolio is the root of the investment hierarchy. Budget amounts are
// stored in minor currency units (cents).
type Portfolio struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	OwnerID     uuid.UUID        `json:"ownerId"`
	Status      InvestmentStatus `json:"status"`
	Budget      *int64           `json:"budget,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// CreatePortfolioInput is the create payload. Budget arrives in major
// currency units and is converted to cents on write. OwnerID is stamped from
// the authenticated actor, never taken from the payload.
type CreatePortfolioInput struct {
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	Status      *InvestmentStatus `json:"status,omitempty"`
	Budget      *int64            `json:"budget,omitempty"`
}

// UpdatePortfolioInput is the partial-update payload; nil fields are left
// untouched.
type UpdatePortfolioInput struct {
	Name        *string           `json:"name,omitempty"`
	Description *string           `json:"description,omitempty"`
	Status      *InvestmentStatus `json:"status,omitempty"`
	Budget      *int64            `json:"budget,omitempty"`
}

// Program groups demands, projects and products under exactly one portfolio.
type Program struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	PortfolioID uuid.UUID        `json:"portfolioId"`
	OwnerID     uuid.UUID        `json:"ownerId"`
	Status      InvestmentStatus `json:"status"`
	Budget      *int64           `json:"budget,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// CreateProgramInput is the create payload for programs.
type CreateProgramInput struct {
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	PortfolioID uuid.UUID         `json:"portfolioId"`
	Status      *InvestmentStatus `json:"status,omitempty"`
	Budget      *int64            `json:"budget,omitempty"`
}

// UpdateProgramInput is the partial-update payload for programs.
type UpdateProgramInput struct {
	Name        *string           `json:"name,omitempty"`
	Description *string           `json:"description,omitempty"`
	PortfolioID *uuid.UUID        `json:"portfolioId,omitempty"`
	Status      *InvestmentStatus `json:"status,omitempty"`
	Budget      *int64            `json:"budget,omitempty"`
}
