package models

import (
	"time"

	"github.com/google/uuid"
)

// LookupType scopes a phase or status row to the demand or project domain.
type LookupType string

const (
	LookupDemand  LookupType = "demand"
	LookupProject LookupType = "project"
)

// ValidLookupType reports whether t is a known lookup domain.
func ValidLookupType(t LookupType) bool {
	return t == LookupDemand || t == LookupProject
}

// Phase is an ordered workflow stage. Inactive phases are excluded from
// listings but remain resolvable by id so historical references keep working.
type Phase struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Type      LookupType `json:"type"`
	Order     int        `json:"order"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CreatePhaseInput is the create payload. When Order is nil the next sequence
// value within the type is assigned.
type CreatePhaseInput struct {
	Name  string     `json:"name"`
	Type  LookupType `json:"type"`
	Order *int       `json:"order,omitempty"`
}

// Status is a labeled, colored state scoped to a lookup domain.
type Status struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Type      LookupType `json:"type"`
	Color     string     `json:"color"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CreateStatusInput is the create payload for statuses.
type CreateStatusInput struct {
	Name  string     `json:"name"`
	Type  LookupType `json:"type"`
	Color *string    `json:"color,omitempty"`
}

// DefaultStatusColor is applied when a status is created without a color.
const DefaultStatusColor = "gray"
