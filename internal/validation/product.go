package validation

import (
	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/models"
)

// ValidateCreateProduct checks the full create payload.
func ValidateCreateProduct(in *models.CreateProductInput) error {
	errs := &Errors{}

	validateRequiredName(errs, "name", in.Name)
	if in.ProgramID == uuid.Nil {
		errs.Add("programId", "is required")
	}
	if in.Status != nil && !models.ValidProductStatus(*in.Status) {
		errs.Add("status", "must be one of [in_development active deprecated sunset]")
	}
	if in.Version != nil && *in.Version == "" {
		errs.Add("version", "must not be empty")
	}

	return errs.Err()
}

// ValidateUpdateProduct checks only the supplied fields of a patch.
func ValidateUpdateProduct(in *models.UpdateProductInput) error {
	errs := &Errors{}

	if in.Name != nil {
		validateRequiredName(errs, "name", *in.Name)
	}
	if in.ProgramID != nil && *in.ProgramID == uuid.Nil {
		errs.Add("programId", "must be a valid id")
	}
	if in.Status != nil && !models.ValidProductStatus(*in.Status) {
		errs.Add("status", "must be one of [in_development active deprecated sunset]")
	}
	if in.Version != nil && *in.Version == "" {
		errs.Add("version", "must not be empty")
	}

	return errs.Err()
}
