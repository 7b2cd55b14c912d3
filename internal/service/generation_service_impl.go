package service

import (
	"context"
	"fmt"
	"time"

	"github.com/96-neko-96/ploterAI/internal/db"
	"github.com/96-neko-96/ploterAI/internal/domain"
	"github.com/96-neko-96/ploterAI/internal/intelligence"
	"github.com/96-neko-96/ploterAI/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultHistoryLimit is how many runs per project the history keeps.
const DefaultHistoryLimit = 200

// GenerationRequest selects the stage, the target scene and the cast.
// Empty CharacterIDs means the scene's own characters, or the whole cast
// when the scene names none.
type GenerationRequest struct {
	Stage        domain.Stage
	SceneID      string
	CharacterIDs []string
}

// GenerationResult is the updated scene plus what was generated.
type GenerationResult struct {
	Scene domain.Scene
	Draft *intelligence.StoryDraft
	Run   *domain.GenerationRun
}

type generationService struct {
	projects     ProjectService
	story        intelligence.StoryService
	runs         repository.GenerationRunRepo
	uow          db.UnitOfWork
	observer     UseCaseObserver
	log          *zap.Logger
	now          func() time.Time
	provider     string
	model        string
	historyLimit int
}

// GenerationOption configures a GenerationService.
type GenerationOption func(*generationService)

// WithHistory enables run history. runs serves reads; writes go through uow.
func WithHistory(runs repository.GenerationRunRepo, uow db.UnitOfWork, limit int) GenerationOption {
	return func(s *generationService) {
		s.runs = runs
		s.uow = uow
		if limit > 0 {
			s.historyLimit = limit
		}
	}
}

// WithModelInfo records provider and model names on history rows.
func WithModelInfo(provider, model string) GenerationOption {
	return func(s *generationService) {
		s.provider = provider
		s.model = model
	}
}

func WithGenerationLogger(log *zap.Logger) GenerationOption {
	return func(s *generationService) { s.log = log }
}

func WithGenerationClock(now func() time.Time) GenerationOption {
	return func(s *generationService) { s.now = now }
}

func WithUseCaseObserver(obs UseCaseObserver) GenerationOption {
	return func(s *generationService) { s.observer = useCaseObserverOrNoop([]UseCaseObserver{obs}) }
}

// NewGenerationService wires the drafting stages to the active project.
func NewGenerationService(projects ProjectService, story intelligence.StoryService, opts ...GenerationOption) GenerationService {
	s := &generationService{
		projects:     projects,
		story:        story,
		observer:     NoopUseCaseObserver{},
		log:          zap.NewNop(),
		now:          func() time.Time { return time.Now().UTC() },
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("generation")
	return s
}

func (s *generationService) Run(ctx context.Context, req GenerationRequest) (result *GenerationResult, err error) {
	started := s.now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generation.run",
			StartedAt: started,
			Duration:  s.now().Sub(started),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"stage": string(req.Stage), "scene_id": req.SceneID},
		})
	}()

	if !domain.ValidStages[string(req.Stage)] {
		return nil, fmt.Errorf("unknown stage %q: %w", req.Stage, domain.ErrValidation)
	}
	project, ok := s.projects.Active()
	if !ok {
		return nil, domain.ErrNotActive
	}
	scene, ok := s.projects.SceneByID(req.SceneID)
	if !ok {
		return nil, fmt.Errorf("scene %s: %w", req.SceneID, domain.ErrNotFound)
	}

	castIDs := req.CharacterIDs
	if len(castIDs) == 0 {
		castIDs = scene.CharacterIDs
	}
	sc := intelligence.StoryContext{
		Title:      scene.Title,
		Overview:   scene.Synopsis(),
		Characters: project.CharactersByID(castIDs),
		World:      project.WorldSettings,
		Style:      project.WritingStyle,
	}

	var draft *intelligence.StoryDraft
	switch req.Stage {
	case domain.StagePlot:
		draft, err = s.story.Plot(ctx, sc)
	case domain.StageMedium:
		draft, err = s.story.ExpandMedium(ctx, scene.Content, sc)
	case domain.StageLong:
		draft, err = s.story.ExpandLong(ctx, scene.Content, sc)
	}
	if err != nil {
		return nil, err
	}

	scene.Content = draft.Text
	if len(req.CharacterIDs) > 0 {
		scene.CharacterIDs = append([]string{}, req.CharacterIDs...)
	}
	if err := s.projects.UpdateScene(scene.ID, scene); err != nil {
		return nil, fmt.Errorf("storing %s draft: %w", req.Stage, err)
	}
	updated, _ := s.projects.SceneByID(scene.ID)

	run := &domain.GenerationRun{
		ID:          uuid.New().String(),
		ProjectPath: s.projects.CurrentPath(),
		SceneID:     scene.ID,
		Stage:       req.Stage,
		Provider:    s.provider,
		Model:       domain.CoalesceStr(draft.Model, s.model),
		InputChars:  draft.InputChars,
		OutputChars: len([]rune(draft.Text)),
		LatencyMs:   draft.LatencyMs,
		CreatedAt:   s.now(),
	}
	s.record(ctx, run)

	return &GenerationResult{Scene: updated, Draft: draft, Run: run}, nil
}

// record writes run and trims old history. Failures are logged only.
func (s *generationService) record(ctx context.Context, run *domain.GenerationRun) {
	if s.uow == nil || run.ProjectPath == "" {
		return
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteGenerationRunRepo(tx)
		if err := repo.Create(ctx, run); err != nil {
			return err
		}
		_, err := repo.Prune(ctx, run.ProjectPath, s.historyLimit)
		return err
	})
	if err != nil {
		s.log.Warn("recording generation run failed",
			zap.String("scene_id", run.SceneID),
			zap.String("stage", string(run.Stage)),
			zap.Error(err))
	}
}

func (s *generationService) History(ctx context.Context, limit int) ([]*domain.GenerationRun, error) {
	if s.runs == nil {
		return nil, nil
	}
	path := s.projects.CurrentPath()
	if path == "" {
		return nil, nil
	}
	return s.runs.ListByProject(ctx, path, limit)
}

func (s *generationService) SceneHistory(ctx context.Context, sceneID string) ([]*domain.GenerationRun, error) {
	if s.runs == nil {
		return nil, nil
	}
	return s.runs.ListByScene(ctx, sceneID)
}

func (s *generationService) ForgetScene(ctx context.Context, sceneID string) (int64, error) {
	if s.uow == nil {
		return 0, nil
	}
	var deleted int64
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		n, err := repository.NewSQLiteGenerationRunRepo(tx).DeleteByScene(ctx, sceneID)
		deleted = n
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("forgetting history of scene %s: %w", sceneID, err)
	}
	return deleted, nil
}
