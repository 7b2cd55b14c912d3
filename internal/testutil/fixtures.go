package testutil

import (
	"time"

	"github.com/96-neko-96/ploterAI/internal/domain"
	"github.com/google/uuid"
)

// FixedTime is the clock value used by fixtures that need a stable instant.
var FixedTime = time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

// RunOption customises a generation run fixture.
type RunOption func(*domain.GenerationRun)

func WithRunModel(model string) RunOption {
	return func(r *domain.GenerationRun) {
		r.Model = model
	}
}

func WithRunChars(in, out int) RunOption {
	return func(r *domain.GenerationRun) {
		r.InputChars = in
		r.OutputChars = out
	}
}

func WithRunTime(t time.Time) RunOption {
	return func(r *domain.GenerationRun) {
		r.CreatedAt = t
	}
}

// NewTestRun builds a generation run with a fresh id.
func NewTestRun(projectPath, sceneID string, stage domain.Stage, opts ...RunOption) *domain.GenerationRun {
	r := &domain.GenerationRun{
		ID:          uuid.New().String(),
		ProjectPath: projectPath,
		SceneID:     sceneID,
		Stage:       stage,
		Provider:    "gemini",
		Model:       "test-model",
		InputChars:  10,
		OutputChars: 100,
		LatencyMs:   250,
		CreatedAt:   time.Now().UTC(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// NewSampleProject returns a small project with one character ("Aria",
// id "c1") and one scene ("Ch1", id "s1") that features her.
func NewSampleProject(name string) *domain.Project {
	p := domain.NewProject(name, FixedTime)
	p.Characters = append(p.Characters, domain.Character{
		ID:          "c1",
		Name:        "Aria",
		Personality: "curious",
		Speech:      "quick and teasing",
	})
	p.WorldSettings = domain.WorldSettings{Name: "Saltmere", Era: "age of sail"}
	p.Scenes = append(p.Scenes, domain.Scene{
		ID:           "s1",
		Title:        "Ch1",
		Overview:     "Aria finds the lighthouse key.",
		CharacterIDs: []string{"c1"},
		CreatedAt:    domain.NewTimestamp(FixedTime),
	})
	return p
}
