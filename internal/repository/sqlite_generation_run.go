package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/96-neko-96/ploterAI/internal/db"
	"github.com/96-neko-96/ploterAI/internal/domain"
)

const generationRunColumns = `id, project_path, scene_id, stage, provider, model,
	input_chars, output_chars, latency_ms, created_at`

// SQLiteGenerationRunRepo implements GenerationRunRepo on SQLite. It works
// on a plain *sql.DB or on a transaction from a UnitOfWork.
//
// Runs sharing a created_at are ordered by rowid, i.e. insertion order.
type SQLiteGenerationRunRepo struct {
	db db.DBTX
}

// NewSQLiteGenerationRunRepo creates a new SQLiteGenerationRunRepo.
func NewSQLiteGenerationRunRepo(conn db.DBTX) *SQLiteGenerationRunRepo {
	return &SQLiteGenerationRunRepo{db: conn}
}

func (r *SQLiteGenerationRunRepo) Create(ctx context.Context, run *domain.GenerationRun) error {
	query := `INSERT INTO generation_runs (` + generationRunColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.ProjectPath,
		run.SceneID,
		string(run.Stage),
		run.Provider,
		run.Model,
		run.InputChars,
		run.OutputChars,
		run.LatencyMs,
		formatTime(run.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting generation run: %w", err)
	}
	return nil
}

func (r *SQLiteGenerationRunRepo) GetByID(ctx context.Context, id string) (*domain.GenerationRun, error) {
	query := `SELECT ` + generationRunColumns + ` FROM generation_runs WHERE id = ?`
	run, err := scanGenerationRun(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("generation run: %w", ErrNotFound)
		}
		return nil, err
	}
	return run, nil
}

func (r *SQLiteGenerationRunRepo) ListByProject(ctx context.Context, projectPath string, limit int) ([]*domain.GenerationRun, error) {
	query := `SELECT ` + generationRunColumns + ` FROM generation_runs
		WHERE project_path = ?
		ORDER BY created_at DESC, rowid DESC`
	args := []any{projectPath}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing generation runs by project: %w", err)
	}
	defer rows.Close()
	return scanGenerationRuns(rows)
}

func (r *SQLiteGenerationRunRepo) ListByScene(ctx context.Context, sceneID string) ([]*domain.GenerationRun, error) {
	query := `SELECT ` + generationRunColumns + ` FROM generation_runs
		WHERE scene_id = ?
		ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, sceneID)
	if err != nil {
		return nil, fmt.Errorf("listing generation runs by scene: %w", err)
	}
	defer rows.Close()
	return scanGenerationRuns(rows)
}

func (r *SQLiteGenerationRunRepo) Prune(ctx context.Context, projectPath string, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	query := `DELETE FROM generation_runs
		WHERE project_path = ?
		  AND rowid NOT IN (
			SELECT rowid FROM generation_runs
			WHERE project_path = ?
			ORDER BY created_at DESC, rowid DESC
			LIMIT ?
		  )`
	res, err := r.db.ExecContext(ctx, query, projectPath, projectPath, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning generation runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning generation runs: %w", err)
	}
	return n, nil
}

func (r *SQLiteGenerationRunRepo) DeleteByScene(ctx context.Context, sceneID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM generation_runs WHERE scene_id = ?`, sceneID)
	if err != nil {
		return 0, fmt.Errorf("deleting generation runs by scene: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting generation runs by scene: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGenerationRun(row rowScanner) (*domain.GenerationRun, error) {
	var (
		run       domain.GenerationRun
		stage     string
		createdAt string
	)
	err := row.Scan(
		&run.ID, &run.ProjectPath, &run.SceneID, &stage, &run.Provider, &run.Model,
		&run.InputChars, &run.OutputChars, &run.LatencyMs, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning generation run: %w", err)
	}
	run.Stage = domain.Stage(stage)
	run.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &run, nil
}

func scanGenerationRuns(rows *sql.Rows) ([]*domain.GenerationRun, error) {
	var runs []*domain.GenerationRun
	for rows.Next() {
		run, err := scanGenerationRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating generation runs: %w", err)
	}
	return runs, nil
}
