package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/repository"
	"github.com/stratify/stratify/internal/validation"
)

// Reference checks shared by the demand, project and product services. Each
// returns a field-scoped validation error when the referenced row is missing
// or belongs to the wrong lookup domain.

func checkProgramRef(ctx context.Context, programs ProgramStore, id uuid.UUID) error {
	if _, err := programs.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fieldError("programId", "program not found")
		}
		return err
	}
	return nil
}

func checkPhaseRef(ctx context.Context, lookups LookupStore, id uuid.UUID, want models.LookupType) error {
	phase, err := lookups.GetPhaseByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fieldError("phaseId", "phase not found")
		}
		return err
	}
	if phase.Type != want {
		return fieldError("phaseId", "phase type must be "+string(want))
	}
	return nil
}

func checkStatusRef(ctx context.Context, lookups LookupStore, id uuid.UUID, want models.LookupType) error {
	status, err := lookups.GetStatusByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fieldError("statusId", "status not found")
		}
		return err
	}
	if status.Type != want {
		return fieldError("statusId", "status type must be "+string(want))
	}
	return nil
}

func checkUserRef(ctx context.Context, users UserStore, field string, id uuid.UUID) error {
	if _, err := users.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fieldError(field, "user not found")
		}
		return err
	}
	return nil
}

func fieldError(field, message string) error {
	errs := &validation.Errors{}
	errs.Add(field, message)
	return errs
}
