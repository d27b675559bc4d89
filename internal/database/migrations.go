package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"
)

// migrationLockID is the advisory lock key guarding concurrent migrations.
const migrationLockID = 824571003

// RunMigrations creates the schema. The advisory lock keeps multiple process
// instances from racing each other at startup.
func RunMigrations(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := db.ExecContext(ctx, "SELECT pg_advisory_lock($1)", migrationLockID); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	defer func() {
		if _, err := db.Exec("SELECT pg_advisory_unlock($1)", migrationLockID); err != nil {
			log.Printf("failed to release migration lock: %v", err)
		}
	}()

	migrations := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) UNIQUE,
			first_name VARCHAR(255),
			last_name VARCHAR(255),
			profile_image_url TEXT,
			role VARCHAR(50) NOT NULL DEFAULT 'contributor',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS portfolios (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name VARCHAR(255) NOT NULL,
			description TEXT,
			owner_id UUID NOT NULL REFERENCES users(id),
			status VARCHAR(50) NOT NULL DEFAULT 'active',
			budget BIGINT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS programs (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name VARCHAR(255) NOT NULL,
			description TEXT,
			portfolio_id UUID NOT NULL REFERENCES portfolios(id),
			owner_id UUID NOT NULL REFERENCES users(id),
			status VARCHAR(50) NOT NULL DEFAULT 'active',
			budget BIGINT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS phases (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name VARCHAR(255) NOT NULL,
			type VARCHAR(20) NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS statuses (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name VARCHAR(255) NOT NULL,
			type VARCHAR(20) NOT NULL,
			color VARCHAR(50) NOT NULL DEFAULT 'gray',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS demands (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			title VARCHAR(255) NOT NULL,
			description TEXT,
			program_id UUID NOT NULL REFERENCES programs(id),
			phase_id UUID REFERENCES phases(id),
			status_id UUID REFERENCES statuses(id),
			owner_id UUID NOT NULL REFERENCES users(id),
			priority VARCHAR(20) NOT NULL DEFAULT 'medium',
			requested_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			estimated_effort INTEGER,
			business_value TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// demand_id is deliberately not a foreign key: a project keeps its
		// provenance link even after the originating demand is deleted.
		`CREATE TABLE IF NOT EXISTS projects (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			title VARCHAR(255) NOT NULL,
			description TEXT,
			program_id UUID NOT NULL REFERENCES programs(id),
			demand_id UUID,
			phase_id UUID REFERENCES phases(id),
			status_id UUID REFERENCES statuses(id),
			owner_id UUID NOT NULL REFERENCES users(id),
			project_manager_id UUID REFERENCES users(id),
			priority VARCHAR(20) NOT NULL DEFAULT 'medium',
			start_date TIMESTAMPTZ,
			end_date TIMESTAMPTZ,
			budget BIGINT,
			progress INTEGER NOT NULL DEFAULT 0 CHECK (progress >= 0 AND progress <= 100),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name VARCHAR(255) NOT NULL,
			description TEXT,
			program_id UUID NOT NULL REFERENCES programs(id),
			owner_id UUID NOT NULL REFERENCES users(id),
			status VARCHAR(50) NOT NULL DEFAULT 'in_development',
			version VARCHAR(50) NOT NULL DEFAULT '1.0.0',
			launch_date TIMESTAMPTZ,
			business_value TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS project_products (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			project_id UUID NOT NULL REFERENCES projects(id),
			product_id UUID NOT NULL REFERENCES products(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (project_id, product_id)
		)`,

		`CREATE TABLE IF NOT EXISTS assignments (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			project_id UUID NOT NULL REFERENCES projects(id),
			user_id UUID NOT NULL REFERENCES users(id),
			role VARCHAR(100) NOT NULL DEFAULT 'team_member',
			assigned_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// entity_id is a plain string so audit rows survive entity deletion.
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			entity_type VARCHAR(50) NOT NULL,
			entity_id VARCHAR(255) NOT NULL,
			change_type VARCHAR(50) NOT NULL,
			changed_by UUID NOT NULL REFERENCES users(id),
			details JSONB NOT NULL DEFAULT '{}',
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_programs_portfolio_id ON programs(portfolio_id)`,
		`CREATE INDEX IF NOT EXISTS idx_demands_program_id ON demands(program_id)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_program_id ON projects(program_id)`,
		`CREATE INDEX IF NOT EXISTS idx_products_program_id ON products(program_id)`,
		`CREATE INDEX IF NOT EXISTS idx_assignments_project_id ON assignments(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_logs_entity ON audit_logs(entity_type, entity_id)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_logs_timestamp ON audit_logs(timestamp DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_phases_type ON phases(type, sort_order)`,
		`CREATE INDEX IF NOT EXISTS idx_statuses_type ON statuses(type)`,
	}

	for i, migration := range migrations {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}

	log.Println("Database migrations completed")
	return nil
}
