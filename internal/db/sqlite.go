// Package db provides SQLite storage for user profiles.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/taskmate-ai/taskmate/internal/profile"
)

// SQLite implements profile.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite store and runs migrations. The parent
// directory of path is created if missing.
func New(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Save stores or replaces the profile for the given user.
func (s *SQLite) Save(ctx context.Context, userID string, p *profile.Profile) error {
	if userID == "" {
		return errors.New("user id cannot be empty")
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	query := `
		INSERT INTO profiles (
			user_id, work_start, work_end, break_minutes,
			energy_morning, energy_afternoon, energy_evening, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			work_start       = excluded.work_start,
			work_end         = excluded.work_end,
			break_minutes    = excluded.break_minutes,
			energy_morning   = excluded.energy_morning,
			energy_afternoon = excluded.energy_afternoon,
			energy_evening   = excluded.energy_evening,
			updated_at       = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		userID,
		p.WorkHours.Start,
		p.WorkHours.End,
		p.BreakDurationMin,
		p.EnergyLevels.Morning,
		p.EnergyLevels.Afternoon,
		p.EnergyLevels.Evening,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	return nil
}

// Load retrieves the profile for the given user.
func (s *SQLite) Load(ctx context.Context, userID string) (*profile.Profile, error) {
	query := `
		SELECT work_start, work_end, break_minutes,
		       energy_morning, energy_afternoon, energy_evening
		FROM profiles
		WHERE user_id = ?
	`

	var p profile.Profile
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&p.WorkHours.Start,
		&p.WorkHours.End,
		&p.BreakDurationMin,
		&p.EnergyLevels.Morning,
		&p.EnergyLevels.Afternoon,
		&p.EnergyLevels.Evening,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, profile.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	return &p, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
