package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradeFromPreProviderSchema opens a history database written
// before the provider column existed and checks that old rows survive and
// pick up the column default.
func TestMigrate_UpgradeFromPreProviderSchema(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE generation_runs (
		id           TEXT PRIMARY KEY,
		project_path TEXT NOT NULL,
		scene_id     TEXT NOT NULL,
		stage        TEXT NOT NULL CHECK(stage IN ('plot','medium','long')),
		model        TEXT NOT NULL DEFAULT '',
		input_chars  INTEGER NOT NULL DEFAULT 0,
		output_chars INTEGER NOT NULL DEFAULT 0,
		latency_ms   INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO generation_runs (id, project_path, scene_id, stage, model, created_at)
		VALUES ('old', '/novel.json', 's1', 'plot', 'gemini-1.5-flash', '2025-05-01T10:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var provider, model string
	require.NoError(t, db.QueryRow(`SELECT provider, model FROM generation_runs WHERE id = 'old'`).Scan(&provider, &model))
	assert.Equal(t, "", provider)
	assert.Equal(t, "gemini-1.5-flash", model)

	// Running again over the upgraded schema is a no-op.
	require.NoError(t, Migrate(db))
}
