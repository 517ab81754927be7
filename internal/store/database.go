// Package store persists the schools table and cycle history in PostgreSQL.
// The database is optional: when no DSN is configured the service runs from
// the built-in school seed instead.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Database wraps the PostgreSQL connection.
type Database struct {
	conn *sql.DB
	dsn  string
}

// NewDatabase opens and verifies a connection.
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{conn: db, dsn: dsn}, nil
}

// Close closes the database connection.
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries.
func (db *Database) DB() *sql.DB {
	return db.conn
}

// migrations are applied in order and tracked in schema_migrations.
var migrations = []struct {
	version string
	sql     string
}{
	{
		"001_create_schools",
		`CREATE TABLE IF NOT EXISTS schools (
			school_id    SERIAL PRIMARY KEY,
			name         TEXT NOT NULL,
			domain       TEXT NOT NULL,
			roster_url   TEXT NOT NULL,
			schedule_url TEXT,
			platform     TEXT NOT NULL DEFAULT 'auto',
			sport        TEXT NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (name, sport)
		)`,
	},
	{
		"002_create_sync_cycles",
		`CREATE TABLE IF NOT EXISTS sync_cycles (
			cycle_id      SERIAL PRIMARY KEY,
			success_count INT NOT NULL,
			error_count   INT NOT NULL,
			total         INT NOT NULL,
			started_at    TIMESTAMPTZ,
			finished_at   TIMESTAMPTZ,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
}

// RunMigrations applies all pending migrations.
func (db *Database) RunMigrations() error {
	log.Println("Running database migrations...")

	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists bool
		err := db.conn.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, m.version,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration %s: %w", m.version, err)
		}
		if exists {
			continue
		}

		if _, err := db.conn.Exec(m.sql); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", m.version, err)
		}
		if _, err := db.conn.Exec(
			`INSERT INTO schema_migrations (version) VALUES ($1)`, m.version,
		); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m.version, err)
		}
		log.Printf("✓ Applied migration %s", m.version)
	}

	return nil
}

// HealthCheck verifies the connection.
func (db *Database) HealthCheck(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}
