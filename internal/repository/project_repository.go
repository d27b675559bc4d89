package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stratify/stratify/internal/models"
)

// ProjectRepository handles project persistence.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, title, description, program_id, demand_id, phase_id, status_id, owner_id,
	project_manager_id, priority, start_date, end_date, budget, progress, created_at, updated_at`

func scanProject(row interface{ Scan(...interface{}) error }) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.ProgramID,
		&p.DemandID,
		&p.PhaseID,
		&p.StatusID,
		&p.OwnerID,
		&p.ProjectManagerID,
		&p.Priority,
		&p.StartDate,
		&p.EndDate,
		&p.Budget,
		&p.Progress,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns projects newest first, scoped to a program when programID is
// non-nil.
func (r *ProjectRepository) List(ctx context.Context, programID *uuid.UUID) ([]*models.Project, error) {
	query := fmt.Sprintf("SELECT %s FROM projects", projectColumns)
	args := []interface{}{}
	if programID != nil {
		query += " WHERE program_id = $1"
		args = append(args, *programID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

// GetByID returns a single project or ErrNotFound.
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := fmt.Sprintf("SELECT %s FROM projects WHERE id = $1", projectColumns)

	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// Create inserts the project and its audit entry in one transaction.
func (r *ProjectRepository) Create(ctx context.Context, p *models.Project, entry *models.AuditLog) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO projects (id, title, description, program_id, demand_id, phase_id, status_id, owner_id,
				project_manager_id, priority, start_date, end_date, budget, progress, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		`
		_, err := tx.ExecContext(ctx, query,
			p.ID, p.Title, p.Description, p.ProgramID, p.DemandID, p.PhaseID, p.StatusID, p.OwnerID,
			p.ProjectManagerID, p.Priority, p.StartDate, p.EndDate, p.Budget, p.Progress, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		return insertAuditLog(ctx, tx, entry)
	})
}

// Update writes the full row and its audit entry in one transaction.
func (r *ProjectRepository) Update(ctx context.Context, p *models.Project, entry *models.AuditLog) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			UPDATE projects
			SET title = $2, description = $3, program_id = $4, demand_id = $5, phase_id = $6, status_id = $7,
				project_manager_id = $8, priority = $9, start_date = $10, end_date = $11, budget = $12,
				progress = $13, updated_at = $14
			WHERE id = $1
		`
		result, err := tx.ExecContext(ctx, query,
			p.ID, p.Title, p.Description, p.ProgramID, p.DemandID, p.PhaseID, p.StatusID,
			p.ProjectManagerID, p.Priority, p.StartDate, p.EndDate, p.Budget, p.Progress, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return fmt.Errorf("project %s: %w", p.ID, ErrNotFound)
		}
		return insertAuditLog(ctx, tx, entry)
	})
}

// Delete hard-deletes the row, its relationship rows and records the audit
// entry in one transaction.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID, entry *models.AuditLog) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM project_products WHERE project_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete project links: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM assignments WHERE project_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete project assignments: %w", err)
		}

		result, err := tx.ExecContext(ctx, "DELETE FROM projects WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return insertAuditLog(ctx, tx, entry)
	})
}

// CountByStatusNames counts projects whose status lookup row carries one of
// the given names. Feeds the dashboard aggregation.
func (r *ProjectRepository) CountByStatusNames(ctx context.Context, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}

	query := `
		SELECT COUNT(*)
		FROM projects p
		JOIN statuses s ON s.id = p.status_id
		WHERE s.name = ANY($1)
	`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, pq.Array(names)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count projects by status: %w", err)
	}
	return count, nil
}
