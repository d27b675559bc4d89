package validation

import (
	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/models"
)

// ValidateCreateDemand checks the full create payload.
func ValidateCreateDemand(in *models.CreateDemandInput) error {
	errs := &Errors{}

	validateRequiredName(errs, "title", in.Title)
	if in.ProgramID == uuid.Nil {
		errs.Add("programId", "is required")
	}
	validatePriority(errs, in.Priority)
	if in.EstimatedEffort != nil && *in.EstimatedEffort < 0 {
		errs.Add("estimatedEffort", "must not be negative")
	}

	return errs.Err()
}

// ValidateUpdateDemand checks only the supplied fields of a patch.
func ValidateUpdateDemand(in *models.UpdateDemandInput) error {
	errs := &Errors{}

	if in.Title != nil {
		validateRequiredName(errs, "title", *in.Title)
	}
	if in.ProgramID != nil && *in.ProgramID == uuid.Nil {
		errs.Add("programId", "must be a valid id")
	}
	validatePriority(errs, in.Priority)
	if in.EstimatedEffort != nil && *in.EstimatedEffort < 0 {
		errs.Add("estimatedEffort", "must not be negative")
	}

	return errs.Err()
}

func validatePriority(errs *Errors, p *models.Priority) {
	if p != nil && !models.ValidPriority(*p) {
		errs.Add("priority", "must be one of [high medium low]")
	}
}
