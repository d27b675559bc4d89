package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stratify/stratify/internal/models"
)

// DemandRepository handles demand persistence.
type DemandRepository struct {
	db *sql.DB
}

// NewDemandRepository creates a new demand repository.
func NewDemandRepository(db *sql.DB) *DemandRepository {
	return &DemandRepository{db: db}
}

const demandColumns = `id, title, description, program_id, phase_id, status_id, owner_id,
	priority, requested_date, estimated_effort, business_value, created_at, updated_at`

func scanDemand(row interface{ Scan(...interface{}) error }) (*models.Demand, error) {
	var d models.Demand
	err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Description,
		&d.ProgramID,
		&d.PhaseID,
		&d.StatusID,
		&d.OwnerID,
		&d.Priority,
		&d.RequestedDate,
		&d.EstimatedEffort,
		&d.BusinessValue,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns demands newest first, scoped to a program when programID is
// non-nil.
func (r *DemandRepository) List(ctx context.Context, programID *uuid.UUID) ([]*models.Demand, error) {
	query := fmt.Sprintf("SELECT %s FROM demands", demandColumns)
	args := []interface{}{}
	if programID != nil {
		query += " WHERE program_id = $1"
		args = append(args, *programID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query demands: %w", err)
	}
	defer rows.Close()

	var demands []*models.Demand
	for rows.Next() {
		d, err := scanDemand(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan demand: %w", err)
		}
		demands = append(demands, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate demands: %w", err)
	}

	return demands, nil
}

// GetByID returns a single demand or ErrNotFound.
func (r *DemandRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Demand, error) {
	query := fmt.Sprintf("SELECT %s FROM demands WHERE id = $1", demandColumns)

	d, err := scanDemand(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("demand %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get demand: %w", err)
	}
	return d, nil
}

// Create inserts the demand and its audit entry in one transaction.
func (r *DemandRepository) Create(ctx context.Context, d *models.Demand, entry *models.AuditLog) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO demands (id, title, description, program_id, phase_id, status_id, owner_id,
				priority, requested_date, estimated_effort, business_value, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`
		_, err := tx.ExecContext(ctx, query,
			d.ID, d.Title, d.Description, d.ProgramID, d.PhaseID, d.StatusID, d.OwnerID,
			d.Priority, d.RequestedDate, d.EstimatedEffort, d.BusinessValue, d.CreatedAt, d.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create demand: %w", err)
		}
		return insertAuditLog(ctx, tx, entry)
	})
}

// CountByStatusNames counts demands whose status lookup row carries one of
// the given names. Feeds the dashboard aggregation.
func (r *DemandRepository) CountByStatusNames(ctx context.Context, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}

	query := `
		SELECT COUNT(*)
		FROM demands d
		JOIN statuses s ON s.id = d.status_id
		WHERE s.name = ANY($1)
	`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, pq.Array(names)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count demands by status: %w", err)
	}
	return count, nil
}

// Update writes the full row and its audit entry in one transaction.
func (r *DemandRepository) Update(ctx context.Context, d *models.Demand, entry *models.AuditLog) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			UPDATE demands
			SET title = $2, description = $3, program_id = $4, phase_id = $5, status_id = $6,
				priority = $7, requested_date = $8, estimated_effort = $9, business_value = $10, updated_at = $11
			WHERE id = $1
		`
		result, err := tx.ExecContext(ctx, query,
			d.ID, d.Title, d.Description, d.ProgramID, d.PhaseID, d.StatusID,
			d.Priority, d.RequestedDate, d.EstimatedEffort, d.BusinessValue, d.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update demand: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return fmt.Errorf("demand %s: %w", d.ID, ErrNotFound)
		}
		return insertAuditLog(ctx, tx, entry)
	})
}

// Delete hard-deletes the row and records the audit entry in one transaction.
// Projects that reference the demand keep their demand_id; the provenance
// link is allowed to dangle.
func (r *DemandRepository) Delete(ctx context.Context, id uuid.UUID, entry *models.AuditLog) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM demands WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete demand: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return fmt.Errorf("demand %s: %w", id, ErrNotFound)
		}
		return insertAuditLog(ctx, tx, entry)
	})
}
