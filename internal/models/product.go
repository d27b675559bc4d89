package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductStatus is the lifecycle state of a product.
type ProductStatus string

const (
	ProductInDevelopment ProductStatus = "in_development"
	ProductActive        ProductStatus = "active"
	ProductDeprecated    ProductStatus = "deprecated"
	ProductSunset        ProductStatus = "sunset"
)

// ValidProductStatus reports whether s is a known product status.
func ValidProductStatus(s ProductStatus) bool {
	switch s {
	case ProductInDevelopment, ProductActive, ProductDeprecated, ProductSunset:
		return true
	}
	return false
}

// DefaultProductVersion is applied when a product is created without a version.
const DefaultProductVersion = "1.0.0"

// Product is an independently versioned deliverable under a program.
type Product struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Description   *string       `json:"description,omitempty"`
	ProgramID     uuid.UUID     `json:"programId"`
	OwnerID       uuid.UUID     `json:"ownerId"`
	Status        ProductStatus `json:"status"`
	Version       string        `json:"version"`
	LaunchDate    *time.Time    `json:"launchDate,omitempty"`
	BusinessValue *string       `json:"businessValue,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// CreateProductInput is the create payload for products.
type CreateProductInput struct {
	Name          string         `json:"name"`
	Description   *string        `json:"description,omitempty"`
	ProgramID     uuid.UUID      `json:"programId"`
	Status        *ProductStatus `json:"status,omitempty"`
	Version       *string        `json:"version,omitempty"`
	LaunchDate    *time.Time     `json:"launchDate,omitempty"`
	BusinessValue *string        `json:"businessValue,omitempty"`
}

// UpdateProductInput is the partial-update payload for products.
type UpdateProductInput struct {
	Name          *string        `json:"name,omitempty"`
	Description   *string        `json:"description,omitempty"`
	ProgramID     *uuid.UUID     `json:"programId,omitempty"`
	Status        *ProductStatus `json:"status,omitempty"`
	Version       *string        `json:"version,omitempty"`
	LaunchDate    *time.Time     `json:"launchDate,omitempty"`
	BusinessValue *string        `json:"businessValue,omitempty"`
}
