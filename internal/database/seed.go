package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/models"
)

// SeedDefaultData inserts the curated phase and status sets. Every insert is
// guarded by an existence check, so the routine is idempotent and safe to run
// concurrently across process instances.
func SeedDefaultData(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	phases := []struct {
		name  string
		typ   models.LookupType
		order int
	}{
		{"Intake", models.LookupDemand, 1},
		{"Qualification", models.LookupDemand, 2},
		{"Analysis", models.LookupDemand, 3},
		{"Approval", models.LookupDemand, 4},
		{"Initiation", models.LookupProject, 1},
		{"Planning", models.LookupProject, 2},
		{"Execution", models.LookupProject, 3},
		{"Monitoring", models.LookupProject, 4},
		{"Closure", models.LookupProject, 5},
	}

	for _, p := range phases {
		query := `
			INSERT INTO phases (id, name, type, sort_order)
			SELECT $1, $2, $3, $4
			WHERE NOT EXISTS (SELECT 1 FROM phases WHERE name = $2 AND type = $3)
		`
		if _, err := db.ExecContext(ctx, query, uuid.New(), p.name, p.typ, p.order); err != nil {
			return fmt.Errorf("failed to seed phase %q: %w", p.name, err)
		}
	}

	statuses := []struct {
		name  string
		typ   models.LookupType
		color string
	}{
		{"Pending", models.LookupDemand, "yellow"},
		{"Under Review", models.LookupDemand, "blue"},
		{"Approved", models.LookupDemand, "green"},
		{"Rejected", models.LookupDemand, "red"},
		{"Active", models.LookupProject, "green"},
		{"At Risk", models.LookupProject, "red"},
		{"On Hold", models.LookupProject, "orange"},
		{"Completed", models.LookupProject, "gray"},
	}

	for _, s := range statuses {
		query := `
			INSERT INTO statuses (id, name, type, color)
			SELECT $1, $2, $3, $4
			WHERE NOT EXISTS (SELECT 1 FROM statuses WHERE name = $2 AND type = $3)
		`
		if _, err := db.ExecContext(ctx, query, uuid.New(), s.name, s.typ, s.color); err != nil {
			return fmt.Errorf("failed to seed status %q: %w", s.name, err)
		}
	}

	log.Println("Default lookup data seeded")
	return nil
}

// EnsureDevActor upserts the fixed development identity so dev-mode requests
// have a real user row for ownership and audit references.
func EnsureDevActor(db *sql.DB, actor models.Actor) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `
		INSERT INTO users (id, email, first_name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := db.ExecContext(ctx, query, actor.ID, actor.Email, actor.Name, actor.Role); err != nil {
		return fmt.Errorf("failed to ensure dev actor: %w", err)
	}
	return nil
}
