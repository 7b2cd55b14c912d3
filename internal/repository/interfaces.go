package repository

import (
	"context"

	"github.com/96-neko-96/ploterAI/internal/domain"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = domain.ErrNotFound

// GenerationRunRepo stores the generation history.
type GenerationRunRepo interface {
	Create(ctx context.Context, r *domain.GenerationRun) error
	GetByID(ctx context.Context, id string) (*domain.GenerationRun, error)
	// ListByProject returns the newest runs first. limit <= 0 means no limit.
	ListByProject(ctx context.Context, projectPath string, limit int) ([]*domain.GenerationRun, error)
	ListByScene(ctx context.Context, sceneID string) ([]*domain.GenerationRun, error)
	// Prune keeps the newest keep runs of a project and returns how many
	// were deleted.
	Prune(ctx context.Context, projectPath string, keep int) (int64, error)
	DeleteByScene(ctx context.Context, sceneID string) (int64, error)
}
