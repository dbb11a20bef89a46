package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/influmatch/backend/internal/common/config"
	"github.com/influmatch/backend/internal/common/logger"
	"github.com/influmatch/backend/migrations"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "migrate", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.LoadAuthConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := runMigrations(context.Background(), db, cfg.DatabaseSchema); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	log.Infof("migrations applied")
}

func runMigrations(ctx context.Context, db *sql.DB, schema string) error {
	if schema != "" && schema != "public" {
		if _, err := db.ExecContext(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %q`, schema)); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		if _, err := db.ExecContext(ctx, fmt.Sprintf(`SET search_path TO %q`, schema)); err != nil {
			return fmt.Errorf("failed to set search path: %w", err)
		}
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
