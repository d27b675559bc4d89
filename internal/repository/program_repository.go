package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/models"
)

// ProgramRepository handles program persistence.
type ProgramRepository struct {
	db *sql.DB
}

// NewProgramRepository creates a new program repository.
func NewProgramRepository(db *sql.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

const programColumns = "id, name, description, portfolio_id, owner_id, status, budget, created_at, updated_at"

func scanProgram(row interface{ Scan(...interface{}) error }) (*models.Program, error) {
	var p models.Program
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.PortfolioID,
		&p.OwnerID,
		&p.Status,
		&p.Budget,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns programs ordered by name, scoped to a portfolio when
// portfolioID is non-nil.
func (r *ProgramRepository) List(ctx context.Context, portfolioID *uuid.UUID) ([]*models.Program, error) {
	query := fmt.Sprintf("SELECT %s FROM programs", programColumns)
	args := []interface{}{}
	if portfolioID != nil {
		query += " WHERE portfolio_id = $1"
		args = append(args, *portfolioID)
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query programs: %w", err)
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan program: %w", err)
		}
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate programs: %w", err)
	}

	return programs, nil
}

// GetByID returns a single program or ErrNotFound.
func (r *ProgramRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	query := fmt.Sprintf("SELECT %s FROM programs WHERE id = $1", programColumns)

	p, err := scanProgram(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("program %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get program: %w", err)
	}
	return p, nil
}

// Create inserts the program and its audit entry in one transaction.
func (r *ProgramRepository) Create(ctx context.Context, p *models.Program, entry *models.AuditLog) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO programs (id, name, description, portfolio_id, owner_id, status, budget, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		_, err := tx.ExecContext(ctx, query,
			p.ID, p.Name, p.Description, p.PortfolioID, p.OwnerID, p.Status, p.Budget, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create program: %w", err)
		}
		return insertAuditLog(ctx, tx, entry)
	})
}

// Update writes the full row and its audit entry in one transaction.
func (r *ProgramRepository) Update(ctx context.Context, p *models.Program, entry *models.AuditLog) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			UPDATE programs
			SET name = $2, description = $3, portfolio_id = $4, status = $5, budget = $6, updated_at = $7
			WHERE id = $1
		`
		result, err := tx.ExecContext(ctx, query,
			p.ID, p.Name, p.Description, p.PortfolioID, p.Status, p.Budget, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update program: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return fmt.Errorf("program %s: %w", p.ID, ErrNotFound)
		}
		return insertAuditLog(ctx, tx, entry)
	})
}

// Delete hard-deletes the row and records the audit entry in one transaction.
// Programs with demands, projects or products still attached are refused.
func (r *ProgramRepository) Delete(ctx context.Context, id uuid.UUID, entry *models.AuditLog) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var children int
		query := `
			SELECT (SELECT COUNT(*) FROM demands WHERE program_id = $1)
			     + (SELECT COUNT(*) FROM projects WHERE program_id = $1)
			     + (SELECT COUNT(*) FROM products WHERE program_id = $1)
		`
		if err := tx.QueryRowContext(ctx, query, id).Scan(&children); err != nil {
			return fmt.Errorf("failed to count program children: %w", err)
		}
		if children > 0 {
			return fmt.Errorf("program %s has %d children: %w", id, children, ErrHasChildren)
		}

		result, err := tx.ExecContext(ctx, "DELETE FROM programs WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete program: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return fmt.Errorf("program %s: %w", id, ErrNotFound)
		}
		return insertAuditLog(ctx, tx, entry)
	})
}
