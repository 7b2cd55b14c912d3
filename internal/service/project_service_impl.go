package service

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/96-neko-96/ploterAI/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type projectService struct {
	mu     sync.Mutex
	store  DocumentStore
	log    *zap.Logger
	now    func() time.Time
	newID  func() string
	active *domain.Project
	path   string
}

// ProjectOption configures a ProjectService.
type ProjectOption func(*projectService)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) ProjectOption {
	return func(s *projectService) { s.now = now }
}

// WithIDGenerator overrides how character and scene ids are minted.
func WithIDGenerator(gen func() string) ProjectOption {
	return func(s *projectService) { s.newID = gen }
}

// WithLogger attaches a logger.
func WithLogger(log *zap.Logger) ProjectOption {
	return func(s *projectService) { s.log = log }
}

func NewProjectService(store DocumentStore, opts ...ProjectOption) ProjectService {
	s := &projectService{
		store: store,
		log:   zap.NewNop(),
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("project")
	return s
}

func (s *projectService) CreateNew(name, path string) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = domain.NewProject(name, s.now())
	s.path = path
	if err := s.saveLocked(""); err != nil {
		return nil, err
	}
	s.log.Info("project created", zap.String("name", name), zap.String("path", path))
	return s.active.Clone(), nil
}

func (s *projectService) Load(path string) (*domain.Project, error) {
	raw, found, err := s.store.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading project %s: %w", path, err)
	}
	if !found {
		return nil, fmt.Errorf("project %s: %w", path, domain.ErrNotFound)
	}
	if err := domain.ValidateDocument(raw); err != nil {
		return nil, fmt.Errorf("project %s: %w", path, err)
	}

	var p domain.Project
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("project %s: %w: %v", path, domain.ErrInvalidFormat, err)
	}
	if p.Characters == nil {
		p.Characters = []domain.Character{}
	}
	if p.Scenes == nil {
		p.Scenes = []domain.Scene{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = &p
	s.path = path
	s.log.Info("project loaded", zap.String("path", path),
		zap.Int("characters", len(p.Characters)), zap.Int("scenes", len(p.Scenes)))
	return p.Clone(), nil
}

func (s *projectService) Save(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(path)
}

// saveLocked persists the active document to path, or to the current path
// when path is empty. The caller holds mu.
func (s *projectService) saveLocked(path string) error {
	if s.active == nil {
		return domain.ErrNotActive
	}
	target := domain.CoalesceStr(path, s.path)
	if target == "" {
		return domain.ErrNoPath
	}

	s.active.UpdatedAt = domain.NewTimestamp(s.now())
	if err := s.store.Save(target, s.active); err != nil {
		s.log.Error("project save failed", zap.String("path", target), zap.Error(err))
		return fmt.Errorf("saving project: %w", err)
	}
	s.path = target
	return nil
}

func (s *projectService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
	s.path = ""
}

func (s *projectService) Active() (*domain.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil, false
	}
	return s.active.Clone(), true
}

func (s *projectService) CurrentPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

func (s *projectService) ProjectName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return domain.UntitledProject
	}
	return domain.CoalesceStr(s.active.Name, domain.UntitledProject)
}

// mutate runs fn against the active document and saves it afterwards.
func (s *projectService) mutate(fn func(p *domain.Project) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return domain.ErrNotActive
	}
	if err := fn(s.active); err != nil {
		return err
	}
	return s.saveLocked("")
}

// read runs fn against the active document; it reports false when none is open.
func (s *projectService) read(fn func(p *domain.Project)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return false
	}
	fn(s.active)
	return true
}

func (s *projectService) AddCharacter(c domain.Character) (domain.Character, error) {
	err := s.mutate(func(p *domain.Project) error {
		if err := domain.Validate(c); err != nil {
			return err
		}
		c.ID = s.newID()
		p.Characters = append(p.Characters, c)
		return nil
	})
	if err != nil {
		return domain.Character{}, err
	}
	return c, nil
}

func (s *projectService) UpdateCharacter(id string, c domain.Character) error {
	return s.mutate(func(p *domain.Project) error {
		if err := domain.Validate(c); err != nil {
			return err
		}
		i := p.CharacterIndex(id)
		if i < 0 {
			return fmt.Errorf("character %s: %w", id, domain.ErrNotFound)
		}
		c.ID = id
		p.Characters[i] = c
		return nil
	})
}

func (s *projectService) DeleteCharacter(id string) error {
	return s.mutate(func(p *domain.Project) error {
		kept := p.Characters[:0:0]
		for _, c := range p.Characters {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		p.Characters = kept
		return nil
	})
}

func (s *projectService) Characters() []domain.Character {
	out := []domain.Character{}
	s.read(func(p *domain.Project) {
		out = append(out, p.Characters...)
	})
	return out
}

func (s *projectService) CharacterByID(id string) (domain.Character, bool) {
	var (
		c  domain.Character
		ok bool
	)
	s.read(func(p *domain.Project) {
		if i := p.CharacterIndex(id); i >= 0 {
			c, ok = p.Characters[i], true
		}
	})
	return c, ok
}

func (s *projectService) AddScene(sc domain.Scene) (domain.Scene, error) {
	var added domain.Scene
	err := s.mutate(func(p *domain.Project) error {
		sc = sc.Clone()
		sc.ID = s.newID()
		sc.CreatedAt = domain.NewTimestamp(s.now())
		sc.UpdatedAt = nil
		p.Scenes = append(p.Scenes, sc)
		added = sc.Clone()
		return nil
	})
	if err != nil {
		return domain.Scene{}, err
	}
	return added, nil
}

func (s *projectService) UpdateScene(id string, sc domain.Scene) error {
	return s.mutate(func(p *domain.Project) error {
		i := p.SceneIndex(id)
		if i < 0 {
			return fmt.Errorf("scene %s: %w", id, domain.ErrNotFound)
		}
		updated := sc.Clone()
		updated.ID = id
		updated.CreatedAt = p.Scenes[i].CreatedAt
		ts := domain.NewTimestamp(s.now())
		updated.UpdatedAt = &ts
		p.Scenes[i] = updated
		return nil
	})
}

func (s *projectService) DeleteScene(id string) error {
	return s.mutate(func(p *domain.Project) error {
		kept := p.Scenes[:0:0]
		for _, sc := range p.Scenes {
			if sc.ID != id {
				kept = append(kept, sc)
			}
		}
		p.Scenes = kept
		return nil
	})
}

// ReorderScenes rebuilds the scene list in the order of ids. Unknown ids
// are skipped, repeated ids count once, and existing scenes missing from
// ids are dropped from the document.
func (s *projectService) ReorderScenes(ids []string) error {
	return s.mutate(func(p *domain.Project) error {
		byID := make(map[string]domain.Scene, len(p.Scenes))
		for _, sc := range p.Scenes {
			byID[sc.ID] = sc
		}
		reordered := make([]domain.Scene, 0, len(ids))
		for _, id := range ids {
			sc, ok := byID[id]
			if !ok {
				continue
			}
			reordered = append(reordered, sc)
			delete(byID, id)
		}
		if dropped := len(p.Scenes) - len(reordered); dropped > 0 {
			s.log.Warn("reorder dropped scenes not listed", zap.Int("dropped", dropped))
		}
		p.Scenes = reordered
		return nil
	})
}

func (s *projectService) Scenes() []domain.Scene {
	out := []domain.Scene{}
	s.read(func(p *domain.Project) {
		for _, sc := range p.Scenes {
			out = append(out, sc.Clone())
		}
	})
	return out
}

func (s *projectService) SceneByID(id string) (domain.Scene, bool) {
	var (
		sc domain.Scene
		ok bool
	)
	s.read(func(p *domain.Project) {
		if i := p.SceneIndex(id); i >= 0 {
			sc, ok = p.Scenes[i].Clone(), true
		}
	})
	return sc, ok
}

func (s *projectService) SetWorldSettings(w domain.WorldSettings) error {
	return s.mutate(func(p *domain.Project) error {
		p.WorldSettings = w
		return nil
	})
}

func (s *projectService) WorldSettings() domain.WorldSettings {
	var w domain.WorldSettings
	s.read(func(p *domain.Project) { w = p.WorldSettings })
	return w
}

func (s *projectService) SetWritingStyle(st domain.Style) error {
	return s.mutate(func(p *domain.Project) error {
		p.WritingStyle = st
		return nil
	})
}

func (s *projectService) WritingStyle() domain.Style {
	st := domain.DefaultStyle()
	s.read(func(p *domain.Project) { st = p.WritingStyle })
	return st
}
