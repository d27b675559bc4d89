package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/models"
)

// ProductRepository handles product persistence.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, description, program_id, owner_id, status, version,
	launch_date, business_value, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.ProgramID,
		&p.OwnerID,
		&p.Status,
		&p.Version,
		&p.LaunchDate,
		&p.BusinessValue,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns products newest first, scoped to a program when programID is
// non-nil.
func (r *ProductRepository) List(ctx context.Context, programID *uuid.UUID) ([]*models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products", productColumns)
	args := []interface{}{}
	if programID != nil {
		query += " WHERE program_id = $1"
		args = append(args, *programID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// GetByID returns a single product or ErrNotFound.
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// Create inserts the product and its audit entry in one transaction.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product, entry *models.AuditLog) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO products (id, name, description, program_id, owner_id, status, version,
				launch_date, business_value, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`
		_, err := tx.ExecContext(ctx, query,
			p.ID, p.Name, p.Description, p.ProgramID, p.OwnerID, p.Status, p.Version,
			p.LaunchDate, p.BusinessValue, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return insertAuditLog(ctx, tx, entry)
	})
}

// Update writes the full row and its audit entry in one transaction.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product, entry *models.AuditLog) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			UPDATE products
			SET name = $2, description = $3, program_id = $4, status = $5, version = $6,
				launch_date = $7, business_value = $8, updated_at = $9
			WHERE id = $1
		`
		result, err := tx.ExecContext(ctx, query,
			p.ID, p.Name, p.Description, p.ProgramID, p.Status, p.Version,
			p.LaunchDate, p.BusinessValue, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return fmt.Errorf("product %s: %w", p.ID, ErrNotFound)
		}
		return insertAuditLog(ctx, tx, entry)
	})
}

// Delete hard-deletes the row, its project links and records the audit entry
// in one transaction.
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID, entry *models.AuditLog) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM project_products WHERE product_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete product links: %w", err)
		}

		result, err := tx.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return insertAuditLog(ctx, tx, entry)
	})
}
