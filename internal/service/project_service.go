package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/repository"
	"github.com/stratify/stratify/internal/validation"
)

// ProjectService implements project CRUD with audit pairing, parent
// validation and project-typed lookup enforcement.
type ProjectService struct {
	projects ProjectStore
	programs ProgramStore
	demands  DemandStore
	lookups  LookupStore
	users    UserStore
	logger   *logger.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(projects ProjectStore, programs ProgramStore, demands DemandStore, lookups LookupStore, users UserStore, log *logger.Logger) *ProjectService {
	return &ProjectService{
		projects: projects,
		programs: programs,
		demands:  demands,
		lookups:  lookups,
		users:    users,
		logger:   log,
	}
}

// List returns projects newest first, scoped to a program when programID is
// non-nil.
func (s *ProjectService) List(ctx context.Context, programID *uuid.UUID) ([]*models.Project, error) {
	return s.projects.List(ctx, programID)
}

// Get returns a single project.
func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// Create validates the payload and references, stamps ownership from the
// actor and persists the project with its audit entry. The demand reference
// is verified at creation; it is allowed to dangle later.
func (s *ProjectService) Create(ctx context.Context, actor models.Actor, in *models.CreateProjectInput) (*models.Project, error) {
	if err := validation.ValidateCreateProject(in); err != nil {
		return nil, err
	}
	if err := checkProgramRef(ctx, s.programs, in.ProgramID); err != nil {
		return nil, err
	}
	if in.DemandID != nil {
		if _, err := s.demands.GetByID(ctx, *in.DemandID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fieldError("demandId", "demand not found")
			}
			return nil, err
		}
	}
	if in.PhaseID != nil {
		if err := checkPhaseRef(ctx, s.lookups, *in.PhaseID, models.LookupProject); err != nil {
			return nil, err
		}
	}
	if in.StatusID != nil {
		if err := checkStatusRef(ctx, s.lookups, *in.StatusID, models.LookupProject); err != nil {
			return nil, err
		}
	}
	if in.ProjectManagerID != nil {
		if err := checkUserRef(ctx, s.users, "projectManagerId", *in.ProjectManagerID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	p := &models.Project{
		ID:               uuid.New(),
		Title:            in.Title,
		Description:      in.Description,
		ProgramID:        in.ProgramID,
		DemandID:         in.DemandID,
		PhaseID:          in.PhaseID,
		StatusID:         in.StatusID,
		OwnerID:          actor.ID,
		ProjectManagerID: in.ProjectManagerID,
		Priority:         models.PriorityMedium,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		Budget:           centsFromMajor(in.Budget),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if in.Priority != nil {
		p.Priority = *in.Priority
	}
	if in.Progress != nil {
		p.Progress = *in.Progress
	}

	entry := models.NewAuditLog(models.EntityProject, p.ID, models.ChangeCreated, actor.ID, models.CreatedDetails(p))
	if err := s.projects.Create(ctx, p, entry); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies the supplied fields, refreshes updatedAt and records a diff
// audit entry. A patch touching statusId is tagged status_changed.
func (s *ProjectService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, in *models.UpdateProjectInput) (*models.Project, error) {
	if err := validation.ValidateUpdateProject(in); err != nil {
		return nil, err
	}

	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	diff := map[string]interface{}{}
	changeType := models.ChangeUpdated

	if in.Title != nil {
		p.Title = *in.Title
		diff["title"] = *in.Title
	}
	if in.Description != nil {
		p.Description = in.Description
		diff["description"] = *in.Description
	}
	if in.ProgramID != nil {
		if err := checkProgramRef(ctx, s.programs, *in.ProgramID); err != nil {
			return nil, err
		}
		p.ProgramID = *in.ProgramID
		diff["programId"] = in.ProgramID.String()
	}
	if in.DemandID != nil {
		p.DemandID = in.DemandID
		diff["demandId"] = in.DemandID.String()
	}
	if in.PhaseID != nil {
		if err := checkPhaseRef(ctx, s.lookups, *in.PhaseID, models.LookupProject); err != nil {
			return nil, err
		}
		p.PhaseID = in.PhaseID
		diff["phaseId"] = in.PhaseID.String()
	}
	if in.StatusID != nil {
		if err := checkStatusRef(ctx, s.lookups, *in.StatusID, models.LookupProject); err != nil {
			return nil, err
		}
		p.StatusID = in.StatusID
		diff["statusId"] = in.StatusID.String()
		changeType = models.ChangeStatusChanged
	}
	if in.ProjectManagerID != nil {
		if err := checkUserRef(ctx, s.users, "projectManagerId", *in.ProjectManagerID); err != nil {
			return nil, err
		}
		p.ProjectManagerID = in.ProjectManagerID
		diff["projectManagerId"] = in.ProjectManagerID.String()
	}
	if in.Priority != nil {
		p.Priority = *in.Priority
		diff["priority"] = *in.Priority
	}
	if in.StartDate != nil {
		p.StartDate = in.StartDate
		diff["startDate"] = *in.StartDate
	}
	if in.EndDate != nil {
		p.EndDate = in.EndDate
		diff["endDate"] = *in.EndDate
	}
	if in.Budget != nil {
		p.Budget = centsFromMajor(in.Budget)
		diff["budget"] = *p.Budget
	}
	if in.Progress != nil {
		p.Progress = *in.Progress
		diff["progress"] = *in.Progress
	}
	p.UpdatedAt = time.Now().UTC()

	entry := models.NewAuditLog(models.EntityProject, p.ID, changeType, actor.ID, models.UpdatedDetails(diff))
	if err := s.projects.Update(ctx, p, entry); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete hard-deletes the project, its relationship rows and records the
// audit entry.
func (s *ProjectService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	entry := models.NewAuditLog(models.EntityProject, id, models.ChangeDeleted, actor.ID, models.DeletedDetails(id))
	return s.projects.Delete(ctx, id, entry)
}
