package validation

import (
	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/models"
)

// ValidateCreatePhase checks the create payload for a phase row.
func ValidateCreatePhase(in *models.CreatePhaseInput) error {
	errs := &Errors{}

	validateRequiredName(errs, "name", in.Name)
	if !models.ValidLookupType(in.Type) {
		errs.Add("type", "must be one of [demand project]")
	}
	if in.Order != nil && *in.Order < 0 {
		errs.Add("order", "must not be negative")
	}

	return errs.Err()
}

// ValidateCreateStatus checks the create payload for a status row.
func ValidateCreateStatus(in *models.CreateStatusInput) error {
	errs := &Errors{}

	validateRequiredName(errs, "name", in.Name)
	if !models.ValidLookupType(in.Type) {
		errs.Add("type", "must be one of [demand project]")
	}
	if in.Color != nil && *in.Color == "" {
		errs.Add("color", "must not be empty")
	}

	return errs.Err()
}

// ValidateCreateProjectProduct checks a project-product link payload.
func ValidateCreateProjectProduct(in *models.CreateProjectProductInput) error {
	errs := &Errors{}

	if in.ProjectID == uuid.Nil {
		errs.Add("projectId", "is required")
	}
	if in.ProductID == uuid.Nil {
		errs.Add("productId", "is required")
	}

	return errs.Err()
}

// ValidateCreateAssignment checks an assignment payload.
func ValidateCreateAssignment(in *models.CreateAssignmentInput) error {
	errs := &Errors{}

	if in.ProjectID == uuid.Nil {
		errs.Add("projectId", "is required")
	}
	if in.UserID == uuid.Nil {
		errs.Add("userId", "is required")
	}
	if in.Role != nil && *in.Role == "" {
		errs.Add("role", "must not be empty")
	}

	return errs.Err()
}
