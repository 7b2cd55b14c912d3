package service

import (
	"context"
	"encoding/json"

	"github.com/96-neko-96/ploterAI/internal/docstore"
	"github.com/96-neko-96/ploterAI/internal/domain"
)

// DocumentStore is the persistence the project model writes through.
type DocumentStore interface {
	Save(path string, v any, opts ...docstore.SaveOption) error
	Load(path string) (json.RawMessage, bool, error)
}

// ProjectService holds the single active project document. Mutating calls
// fail with domain.ErrNotActive when nothing is open and persist the whole
// document before returning. Reads degrade to empty values instead.
type ProjectService interface {
	CreateNew(name, path string) (*domain.Project, error)
	Load(path string) (*domain.Project, error)
	Save(path string) error
	Close()
	Active() (*domain.Project, bool)
	CurrentPath() string
	ProjectName() string

	AddCharacter(c domain.Character) (domain.Character, error)
	UpdateCharacter(id string, c domain.Character) error
	DeleteCharacter(id string) error
	Characters() []domain.Character
	CharacterByID(id string) (domain.Character, bool)

	AddScene(s domain.Scene) (domain.Scene, error)
	UpdateScene(id string, s domain.Scene) error
	DeleteScene(id string) error
	ReorderScenes(ids []string) error
	Scenes() []domain.Scene
	SceneByID(id string) (domain.Scene, bool)

	SetWorldSettings(w domain.WorldSettings) error
	WorldSettings() domain.WorldSettings
	SetWritingStyle(s domain.Style) error
	WritingStyle() domain.Style
}

// GenerationService runs one drafting stage against a scene of the active
// project and writes the result back into it.
type GenerationService interface {
	Run(ctx context.Context, req GenerationRequest) (*GenerationResult, error)
	History(ctx context.Context, limit int) ([]*domain.GenerationRun, error)
	SceneHistory(ctx context.Context, sceneID string) ([]*domain.GenerationRun, error)
	// ForgetScene drops the recorded runs of a removed scene.
	ForgetScene(ctx context.Context, sceneID string) (int64, error)
}
