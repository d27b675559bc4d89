package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/models"
)

// PortfolioRepository handles portfolio persistence.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new portfolio repository.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

const portfolioColumns = "id, name, description, owner_id, status, budget, created_at, updated_at"

func scanPortfolio(row interface{ Scan(...interface{}) error }) (*models.Portfolio, error) {
	var p models.Portfolio
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
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

// List returns all portfolios ordered by name.
func (r *PortfolioRepository) List(ctx context.Context) ([]*models.Portfolio, error) {
	query := fmt.Sprintf("SELECT %s FROM portfolios ORDER BY name ASC", portfolioColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolios: %w", err)
	}
	defer rows.Close()

	var portfolios []*models.Portfolio
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio: %w", err)
		}
		portfolios = append(portfolios, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate portfolios: %w", err)
	}

	return portfolios, nil
}

// GetByID returns a single portfolio or ErrNotFound.
func (r *PortfolioRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Portfolio, error) {
	query := fmt.Sprintf("SELECT %s FROM portfolios WHERE id = $1", portfolioColumns)

	p, err := scanPortfolio(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("portfolio %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}
	return p, nil
}

// Create inserts the portfolio and its audit entry in one transaction.
func (r *PortfolioRepository) Create(ctx context.Context, p *models.Portfolio, entry *models.AuditLog) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO portfolios (id, name, description, owner_id, status, budget, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		_, err := tx.ExecContext(ctx, query,
			p.ID, p.Name, p.Description, p.OwnerID, p.Status, p.Budget, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create portfolio: %w", err)
		}
		return insertAuditLog(ctx, tx, entry)
	})
}

// Update writes the full row and its audit entry in one transaction.
func (r *PortfolioRepository) Update(ctx context.Context, p *models.Portfolio, entry *models.AuditLog) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			UPDATE portfolios
			SET name = $2, description = $3, status = $4, budget = $5, updated_at = $6
			WHERE id = $1
		`
		result, err := tx.ExecContext(ctx, query,
			p.ID, p.Name, p.Description, p.Status, p.Budget, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update portfolio: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return fmt.Errorf("portfolio %s: %w", p.ID, ErrNotFound)
		}
		return insertAuditLog(ctx, tx, entry)
	})
}

// Delete hard-deletes the row and records the audit entry in one transaction.
// Portfolios with programs still attached are refused.
func (r *PortfolioRepository) Delete(ctx context.Context, id uuid.UUID, entry *models.AuditLog) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var children int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM programs WHERE portfolio_id = $1", id).Scan(&children); err != nil {
			return fmt.Errorf("failed to count programs: %w", err)
		}
		if children > 0 {
			return fmt.Errorf("portfolio %s has %d programs: %w", id, children, ErrHasChildren)
		}

		result, err := tx.ExecContext(ctx, "DELETE FROM portfolios WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete portfolio: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return fmt.Errorf("portfolio %s: %w", id, ErrNotFound)
		}
		return insertAuditLog(ctx, tx, entry)
	})
}
