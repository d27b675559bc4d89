package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stratify/stratify/internal/models"
)

// RelationRepository handles the project-product join and project
// assignments.
type RelationRepository struct {
	db *sql.DB
}

// NewRelationRepository creates a new relation repository.
func NewRelationRepository(db *sql.DB) *RelationRepository {
	return &RelationRepository{db: db}
}

// ProjectProductFilters scopes a link listing; zero-value fields are ignored.
type ProjectProductFilters struct {
	ProjectID *uuid.UUID
	ProductID *uuid.UUID
}

// ListProjectProducts returns links matching the filters, newest first.
func (r *RelationRepository) ListProjectProducts(ctx context.Context, filters ProjectProductFilters) ([]*models.ProjectProduct, error) {
	query := "SELECT id, project_id, product_id, created_at FROM project_products WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filters.ProjectID != nil {
		query += fmt.Sprintf(" AND project_id = $%d", argIndex)
		args = append(args, *filters.ProjectID)
		argIndex++
	}
	if filters.ProductID != nil {
		query += fmt.Sprintf(" AND product_id = $%d", argIndex)
		args = append(args, *filters.ProductID)
		argIndex++
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query project products: %w", err)
	}
	defer rows.Close()

	var links []*models.ProjectProduct
	for rows.Next() {
		var link models.ProjectProduct
		if err := rows.Scan(&link.ID, &link.ProjectID, &link.ProductID, &link.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project product: %w", err)
		}
		links = append(links, &link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate project products: %w", err)
	}

	return links, nil
}

// CreateProjectProduct inserts a link row. Re-linking an existing pair
// returns ErrDuplicate.
func (r *RelationRepository) CreateProjectProduct(ctx context.Context, link *models.ProjectProduct) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO project_products (id, project_id, product_id, created_at) VALUES ($1, $2, $3, $4)",
		link.ID, link.ProjectID, link.ProductID, link.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("project %s and product %s: %w", link.ProjectID, link.ProductID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create project product: %w", err)
	}
	return nil
}

// DeleteProjectProduct removes a link row.
func (r *RelationRepository) DeleteProjectProduct(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM project_products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete project product: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("project product %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListAssignments returns assignments, scoped to a project when projectID is
// non-nil.
func (r *RelationRepository) ListAssignments(ctx context.Context, projectID *uuid.UUID) ([]*models.Assignment, error) {
	query := "SELECT id, project_id, user_id, role, assigned_at FROM assignments"
	args := []interface{}{}
	if projectID != nil {
		query += " WHERE project_id = $1"
		args = append(args, *projectID)
	}
	query += " ORDER BY assigned_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.UserID, &a.Role, &a.AssignedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	return assignments, nil
}

// CreateAssignment inserts an assignment row.
func (r *RelationRepository) CreateAssignment(ctx context.Context, a *models.Assignment) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO assignments (id, project_id, user_id, role, assigned_at) VALUES ($1, $2, $3, $4, $5)",
		a.ID, a.ProjectID, a.UserID, a.Role, a.AssignedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

// DeleteAssignment removes an assignment row.
func (r *RelationRepository) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM assignments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("assignment %s: %w", id, ErrNotFound)
	}
	return nil
}
