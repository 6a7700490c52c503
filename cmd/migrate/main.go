// Command migrate creates or resets the database schema for the configured
// environment and table prefix.
package main

import (
	"context"
	"flag"
	"log"

	"voicedeck/internal/config"
	"voicedeck/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before creating the schema (fresh start)")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: never drop production tables
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	log.Printf("Creating schema (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Println("Schema ready")
}

func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	// Children first so the FK constraints don't block the drops
	for _, table := range []string{tables.Documents, tables.Videos, tables.Projects} {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
	}
	return nil
}

func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`); err != nil {
		return err
	}

	// Projects: one new-ideas bucket and any number of named projects per
	// user. Names are unique per user, exact match.
	createProjects := `
		CREATE TABLE IF NOT EXISTS ` + tables.Projects + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			is_new_ideas BOOLEAN NOT NULL DEFAULT FALSE,
			thumbnail_url TEXT,
			color TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(user_id, name)
		)
	`
	if _, err := pool.Exec(ctx, createProjects); err != nil {
		return err
	}

	createVideos := `
		CREATE TABLE IF NOT EXISTS ` + tables.Videos + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			project_id UUID NOT NULL REFERENCES ` + tables.Projects + `(id) ON DELETE CASCADE,
			storage_url TEXT NOT NULL,
			storage_key TEXT NOT NULL,
			duration_seconds DOUBLE PRECISION,
			size_bytes BIGINT,
			mime_type TEXT,
			transcript TEXT,
			keyword TEXT,
			status TEXT NOT NULL,
			error_message TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createVideos); err != nil {
		return err
	}

	// Documents: at most one live document per project
	createDocuments := `
		CREATE TABLE IF NOT EXISTS ` + tables.Documents + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			project_id UUID NOT NULL REFERENCES ` + tables.Projects + `(id) ON DELETE CASCADE,
			user_id UUID NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			version_notes TEXT NOT NULL DEFAULT '',
			videos_included INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(project_id)
		)
	`
	if _, err := pool.Exec(ctx, createDocuments); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `projects_user_id ON ` + tables.Projects + `(user_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_` + tablePrefix + `projects_new_ideas ON ` + tables.Projects + `(user_id) WHERE is_new_ideas`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `videos_user_id ON ` + tables.Videos + `(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `videos_project_status ON ` + tables.Videos + `(project_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_user_id ON ` + tables.Documents + `(user_id)`,
	}
	for _, idx := range indexes {
		if _, err := pool.Exec(ctx, idx); err != nil {
			return err
		}
	}

	return nil
}
