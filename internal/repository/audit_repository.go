package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/models"
)

// AuditRepository handles audit log reads. Writes go through insertAuditLog
// inside the same transaction as the entity mutation they record.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// insertAuditLog appends an immutable audit row. It accepts a DBTX so entity
// repositories can call it on the transaction carrying the entity write.
func insertAuditLog(ctx context.Context, q DBTX, entry *models.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	query := `
		INSERT INTO audit_logs (id, entity_type, entity_id, change_type, changed_by, details, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.ExecContext(ctx, query,
		entry.ID,
		entry.EntityType,
		entry.EntityID,
		entry.ChangeType,
		entry.ChangedBy,
		[]byte(entry.Details),
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

// AuditFilters defines filters for audit log queries. Filters combine with
// AND when more than one is supplied.
type AuditFilters struct {
	EntityID   string
	EntityType string
	Limit      int
	Offset     int
}

// List retrieves audit rows ordered by timestamp descending.
func (r *AuditRepository) List(ctx context.Context, filters AuditFilters) ([]*models.AuditLog, error) {
	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filters.EntityID != "" {
		whereClause += fmt.Sprintf(" AND entity_id = $%d", argIndex)
		args = append(args, filters.EntityID)
		argIndex++
	}

	if filters.EntityType != "" {
		whereClause += fmt.Sprintf(" AND entity_type = $%d", argIndex)
		args = append(args, filters.EntityType)
		argIndex++
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 100
	}

	query := fmt.Sprintf(`
		SELECT id, entity_type, entity_id, change_type, changed_by, details, timestamp
		FROM audit_logs
		%s
		ORDER BY timestamp DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)

	args = append(args, limit, filters.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.AuditLog
	for rows.Next() {
		var entry models.AuditLog
		var details []byte
		err := rows.Scan(
			&entry.ID,
			&entry.EntityType,
			&entry.EntityID,
			&entry.ChangeType,
			&entry.ChangedBy,
			&details,
			&entry.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		entry.Details = details
		logs = append(logs, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit logs: %w", err)
	}

	return logs, nil
}
