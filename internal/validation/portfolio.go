package validation

import (
	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/models"
)

const maxNameLength = 255

// ValidateCreatePortfolio checks the full create payload.
func ValidateCreatePortfolio(in *models.CreatePortfolioInput) error {
	errs := &Errors{}

	validateRequiredName(errs, "name", in.Name)
	if in.Status != nil && !models.ValidInvestmentStatus(*in.Status) {
		errs.Addf("status", "must be one of %v", models.InvestmentStatuses)
	}
	validateBudget(errs, in.Budget)

	return errs.Err()
}

// ValidateUpdatePortfolio checks only the supplied fields of a patch.
func ValidateUpdatePortfolio(in *models.UpdatePortfolioInput) error {
	errs := &Errors{}

	if in.Name != nil {
		validateRequiredName(errs, "name", *in.Name)
	}
	if in.Status != nil && !models.ValidInvestmentStatus(*in.Status) {
		errs.Addf("status", "must be one of %v", models.InvestmentStatuses)
	}
	validateBudget(errs, in.Budget)

	return errs.Err()
}

// ValidateCreateProgram checks the full create payload.
func ValidateCreateProgram(in *models.CreateProgramInput) error {
	errs := &Errors{}

	validateRequiredName(errs, "name", in.Name)
	if in.PortfolioID == uuid.Nil {
		errs.Add("portfolioId", "is required")
	}
	if in.Status != nil && !models.ValidInvestmentStatus(*in.Status) {
		errs.Addf("status", "must be one of %v", models.InvestmentStatuses)
	}
	validateBudget(errs, in.Budget)

	return errs.Err()
}

// ValidateUpdateProgram checks only the supplied fields of a patch.
func ValidateUpdateProgram(in *models.UpdateProgramInput) error {
	errs := &Errors{}

	if in.Name != nil {
		validateRequiredName(errs, "name", *in.Name)
	}
	if in.PortfolioID != nil && *in.PortfolioID == uuid.Nil {
		errs.Add("portfolioId", "must be a valid id")
	}
	if in.Status != nil && !models.ValidInvestmentStatus(*in.Status) {
		errs.Addf("status", "must be one of %v", models.InvestmentStatuses)
	}
	validateBudget(errs, in.Budget)

	return errs.Err()
}

func validateRequiredName(errs *Errors, field, value string) {
	if value == "" {
		errs.Add(field, "is required")
		return
	}
	if len(value) > maxNameLength {
		errs.Addf(field, "must be at most %d characters", maxNameLength)
	}
}

func validateBudget(errs *Errors, budget *int64) {
	if budget != nil && *budget < 0 {
		errs.Add("budget", "must not be negative")
	}
}
