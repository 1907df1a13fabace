package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS profiles (
			user_id          TEXT PRIMARY KEY,
			work_start       TIME NOT NULL,
			work_end         TIME NOT NULL,
			break_minutes    INTEGER NOT NULL DEFAULT 15,
			energy_morning   TEXT CHECK(energy_morning IN ('low', 'medium', 'high')),
			energy_afternoon TEXT CHECK(energy_afternoon IN ('low', 'medium', 'high')),
			energy_evening   TEXT CHECK(energy_evening IN ('low', 'medium', 'high')),
			updated_at       DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating profiles table: %w", err)
	}

	return nil
}
