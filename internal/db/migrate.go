package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent, so it
// is safe to run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE has no IF NOT EXISTS; a column that is already
			// there means the step ran before.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// SchemaVersion returns the number of migration steps known to this build.
func SchemaVersion() int {
	return len(migrations)
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS generation_runs (
		id           TEXT PRIMARY KEY,
		project_path TEXT NOT NULL,
		scene_id     TEXT NOT NULL,
		stage        TEXT NOT NULL CHECK(stage IN ('plot','medium','long')),
		model        TEXT NOT NULL DEFAULT '',
		input_chars  INTEGER NOT NULL DEFAULT 0,
		output_chars INTEGER NOT NULL DEFAULT 0,
		latency_ms   INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_generation_runs_project ON generation_runs(project_path, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_generation_runs_scene ON generation_runs(scene_id)`,
	// Provider was added when Ollama support landed.
	`ALTER TABLE generation_runs ADD COLUMN provider TEXT NOT NULL DEFAULT ''`,
}
