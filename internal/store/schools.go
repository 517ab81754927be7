package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fortuna/atalanta/internal/scrape"
)

// SchoolRepository reads and seeds the schools table.
type SchoolRepository struct {
	db *Database
}

// NewSchoolRepository creates a repository over the database.
func NewSchoolRepository(db *Database) *SchoolRepository {
	return &SchoolRepository{db: db}
}

// GetAll loads every configured school.
func (r *SchoolRepository) GetAll(ctx context.Context) ([]scrape.SchoolConfig, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT name, domain, roster_url, COALESCE(schedule_url, ''), platform, sport
		 FROM schools ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying schools: %w", err)
	}
	defer rows.Close()

	var schools []scrape.SchoolConfig
	for rows.Next() {
		var cfg scrape.SchoolConfig
		if err := rows.Scan(&cfg.Name, &cfg.Domain, &cfg.RosterURL, &cfg.ScheduleURL, &cfg.Platform, &cfg.Sport); err != nil {
			return nil, fmt.Errorf("scanning school: %w", err)
		}
		schools = append(schools, cfg)
	}
	return schools, rows.Err()
}

// Seed inserts schools that are not already present. Safe to run repeatedly.
func (r *SchoolRepository) Seed(ctx context.Context, schools []scrape.SchoolConfig) error {
	for _, cfg := range schools {
		_, err := r.db.conn.ExecContext(ctx,
			`INSERT INTO schools (name, domain, roster_url, schedule_url, platform, sport)
			 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
			 ON CONFLICT (name, sport) DO NOTHING`,
			cfg.Name, cfg.Domain, cfg.RosterURL, cfg.ScheduleURL, cfg.Platform, cfg.Sport)
		if err != nil {
			return fmt.Errorf("seeding school %s: %w", cfg.Name, err)
		}
	}
	return nil
}

// CycleRepository records finished sync cycles.
type CycleRepository struct {
	db *Database
}

// NewCycleRepository creates a repository over the database.
func NewCycleRepository(db *Database) *CycleRepository {
	return &CycleRepository{db: db}
}

// Record persists one cycle summary.
func (r *CycleRepository) Record(ctx context.Context, summary scrape.CycleSummary) error {
	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO sync_cycles (success_count, error_count, total, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		summary.SuccessCount, summary.ErrorCount, summary.Total,
		nullTime(summary.StartedAt), nullTime(summary.FinishedAt))
	if err != nil {
		return fmt.Errorf("recording cycle: %w", err)
	}
	return nil
}

func nullTime(iso string) sql.NullTime {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
