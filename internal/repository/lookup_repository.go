package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/models"
)

// LookupRepository handles the phase and status reference tables.
type LookupRepository struct {
	db *sql.DB
}

// NewLookupRepository creates a new lookup repository.
func NewLookupRepository(db *sql.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// ListPhases returns active phases ordered by sort order, scoped to a lookup
// type when lookupType is non-empty.
func (r *LookupRepository) ListPhases(ctx context.Context, lookupType models.LookupType) ([]*models.Phase, error) {
	query := "SELECT id, name, type, sort_order, is_active, created_at FROM phases WHERE is_active = TRUE"
	args := []interface{}{}
	if lookupType != "" {
		query += " AND type = $1"
		args = append(args, lookupType)
	}
	query += " ORDER BY sort_order ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query phases: %w", err)
	}
	defer rows.Close()

	var phases []*models.Phase
	for rows.Next() {
		var p models.Phase
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Order, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan phase: %w", err)
		}
		phases = append(phases, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate phases: %w", err)
	}

	return phases, nil
}

// GetPhaseByID resolves a phase regardless of its active flag so historical
// references keep working after a soft-disable.
func (r *LookupRepository) GetPhaseByID(ctx context.Context, id uuid.UUID) (*models.Phase, error) {
	var p models.Phase
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, type, sort_order, is_active, created_at FROM phases WHERE id = $1", id,
	).Scan(&p.ID, &p.Name, &p.Type, &p.Order, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("phase %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get phase: %w", err)
	}
	return &p, nil
}

// CreatePhase inserts a phase. A nil order gets the next sequence value
// within the type; a supplied order, zero included, is stored as-is.
func (r *LookupRepository) CreatePhase(ctx context.Context, p *models.Phase, order *int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if order != nil {
			p.Order = *order
		} else {
			err := tx.QueryRowContext(ctx,
				"SELECT COALESCE(MAX(sort_order), 0) + 1 FROM phases WHERE type = $1", p.Type,
			).Scan(&p.Order)
			if err != nil {
				return fmt.Errorf("failed to compute phase order: %w", err)
			}
		}

		_, err := tx.ExecContext(ctx,
			"INSERT INTO phases (id, name, type, sort_order, is_active, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
			p.ID, p.Name, p.Type, p.Order, p.IsActive, p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create phase: %w", err)
		}
		return nil
	})
}

// SetPhaseActive flips the soft-disable flag; rows are never deleted so
// historical references remain resolvable.
func (r *LookupRepository) SetPhaseActive(ctx context.Context, id uuid.UUID, active bool) error {
	result, err := r.db.ExecContext(ctx, "UPDATE phases SET is_active = $2 WHERE id = $1", id, active)
	if err != nil {
		return fmt.Errorf("failed to update phase: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("phase %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListStatuses returns active statuses ordered by name, scoped to a lookup
// type when lookupType is non-empty.
func (r *LookupRepository) ListStatuses(ctx context.Context, lookupType models.LookupType) ([]*models.Status, error) {
	query := "SELECT id, name, type, color, is_active, created_at FROM statuses WHERE is_active = TRUE"
	args := []interface{}{}
	if lookupType != "" {
		query += " AND type = $1"
		args = append(args, lookupType)
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query statuses: %w", err)
	}
	defer rows.Close()

	var statuses []*models.Status
	for rows.Next() {
		var s models.Status
		if err := rows.Scan(&s.ID, &s.Name, &s.Type, &s.Color, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status: %w", err)
		}
		statuses = append(statuses, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate statuses: %w", err)
	}

	return statuses, nil
}

// GetStatusByID resolves a status regardless of its active flag.
func (r *LookupRepository) GetStatusByID(ctx context.Context, id uuid.UUID) (*models.Status, error) {
	var s models.Status
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, type, color, is_active, created_at FROM statuses WHERE id = $1", id,
	).Scan(&s.ID, &s.Name, &s.Type, &s.Color, &s.IsActive, &s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("status %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return &s, nil
}

// CreateStatus inserts a status row.
func (r *LookupRepository) CreateStatus(ctx context.Context, s *models.Status) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO statuses (id, name, type, color, is_active, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		s.ID, s.Name, s.Type, s.Color, s.IsActive, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create status: %w", err)
	}
	return nil
}

// SetStatusActive flips the soft-disable flag on a status row.
func (r *LookupRepository) SetStatusActive(ctx context.Context, id uuid.UUID, active bool) error {
	result, err := r.db.ExecContext(ctx, "UPDATE statuses SET is_active = $2 WHERE id = $1", id, active)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("status %s: %w", id, ErrNotFound)
	}
	return nil
}
