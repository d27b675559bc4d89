package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/models"
)

// UserRepository handles user persistence.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, email, first_name, last_name, profile_image_url, role, created_at, updated_at"

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.ProfileImageURL,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns a single user or ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// Upsert inserts the user or, when the id already exists, updates every
// identity field while preserving id and role.
func (r *UserRepository) Upsert(ctx context.Context, u *models.User) (*models.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (id, email, first_name, last_name, profile_image_url, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			profile_image_url = EXCLUDED.profile_image_url,
			updated_at = NOW()
		RETURNING %s
	`, userColumns)

	saved, err := scanUser(r.db.QueryRowContext(ctx, query,
		u.ID, u.Email, u.FirstName, u.LastName, u.ProfileImageURL, u.Role,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return saved, nil
}

// Search returns up to limit users whose first name, last name or email
// contains q, case-insensitively.
func (r *UserRepository) Search(ctx context.Context, q string, limit int) ([]*models.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1
		ORDER BY first_name ASC, last_name ASC
		LIMIT $2
	`, userColumns)

	rows, err := r.db.QueryContext(ctx, query, "%"+q+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// UpdateRole changes the user's role and records the audit entry in one
// transaction.
func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role models.UserRole, entry *models.AuditLog) (*models.User, error) {
	var updated *models.User
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := fmt.Sprintf(`
			UPDATE users SET role = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING %s
		`, userColumns)

		u, err := scanUser(tx.QueryRowContext(ctx, query, id, role))
		if err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("user %s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to update user role: %w", err)
		}
		updated = u
		return insertAuditLog(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
