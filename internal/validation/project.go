package validation

import (
	"time"

	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/models"
)

// ValidateCreateProject checks the full create payload.
func ValidateCreateProject(in *models.CreateProjectInput) error {
	errs := &Errors{}

	validateRequiredName(errs, "title", in.Title)
	if in.ProgramID == uuid.Nil {
		errs.Add("programId", "is required")
	}
	validatePriority(errs, in.Priority)
	validateProgress(errs, in.Progress)
	validateBudget(errs, in.Budget)
	validateDateRange(errs, in.StartDate, in.EndDate)

	return errs.Err()
}

// ValidateUpdateProject checks only the supplied fields of a patch.
func ValidateUpdateProject(in *models.UpdateProjectInput) error {
	errs := &Errors{}

	if in.Title != nil {
		validateRequiredName(errs, "title", *in.Title)
	}
	if in.ProgramID != nil && *in.ProgramID == uuid.Nil {
		errs.Add("programId", "must be a valid id")
	}
	validatePriority(errs, in.Priority)
	validateProgress(errs, in.Progress)
	validateBudget(errs, in.Budget)
	validateDateRange(errs, in.StartDate, in.EndDate)

	return errs.Err()
}

func validateProgress(errs *Errors, progress *int) {
	if progress != nil && (*progress < 0 || *progress > 100) {
		errs.Add("progress", "must be between 0 and 100")
	}
}

func validateDateRange(errs *Errors, start, end *time.Time) {
	if start != nil && end != nil && end.Before(*start) {
		errs.Add("endDate", "must not be before startDate")
	}
}
