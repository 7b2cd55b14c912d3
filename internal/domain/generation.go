package domain

import "time"

// GenerationRun records one call to the story generator.
type GenerationRun struct {
	ID          string
	ProjectPath string
	SceneID     string
	Stage       Stage
	Provider    string
	Model       string
	InputChars  int
	OutputChars int
	LatencyMs   int64
	CreatedAt   time.Time
}
