package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/96-neko-96/ploterAI/internal/domain"
	"github.com/96-neko-96/ploterAI/internal/llm"
)

// ErrEmptyInput is returned when a stage has nothing to work from.
var ErrEmptyInput = errors.New("stage input is empty")

// StoryContext is everything the generator knows about a scene besides the
// text being expanded.
type StoryContext struct {
	Title      string
	Overview   string
	Characters []domain.Character
	World      domain.WorldSettings
	Style      domain.Style
}

// StoryDraft is the text produced by one stage.
type StoryDraft struct {
	Text       string
	Model      string
	LatencyMs  int64
	InputChars int
}

// StoryService drives the three drafting stages.
type StoryService interface {
	// Plot writes a short outline from the scene overview.
	Plot(ctx context.Context, sc StoryContext) (*StoryDraft, error)

	// ExpandMedium grows a plot into a medium-length draft.
	ExpandMedium(ctx context.Context, plot string, sc StoryContext) (*StoryDraft, error)

	// ExpandLong grows a medium draft into a full scene.
	ExpandLong(ctx context.Context, medium string, sc StoryContext) (*StoryDraft, error)
}

type storyService struct {
	client llm.LLMClient
}

// NewStoryService creates a StoryService backed by an LLM client.
func NewStoryService(client llm.LLMClient) StoryService {
	return &storyService{client: client}
}

func (s *storyService) Plot(ctx context.Context, sc StoryContext) (*StoryDraft, error) {
	if strings.TrimSpace(sc.Overview) == "" {
		return nil, fmt.Errorf("plot: %w: scene overview", ErrEmptyInput)
	}
	return s.run(ctx, llm.TaskPlot, sc.Overview, buildPlotPrompt(sc))
}

func (s *storyService) ExpandMedium(ctx context.Context, plot string, sc StoryContext) (*StoryDraft, error) {
	if strings.TrimSpace(plot) == "" {
		return nil, fmt.Errorf("medium: %w: plot", ErrEmptyInput)
	}
	return s.run(ctx, llm.TaskMedium, plot, buildExpandPrompt(plot, "Plot", mediumInstructions, sc))
}

func (s *storyService) ExpandLong(ctx context.Context, medium string, sc StoryContext) (*StoryDraft, error) {
	if strings.TrimSpace(medium) == "" {
		return nil, fmt.Errorf("long: %w: medium draft", ErrEmptyInput)
	}
	return s.run(ctx, llm.TaskLong, medium, buildExpandPrompt(medium, "Draft", longInstructions, sc))
}

func (s *storyService) run(ctx context.Context, task llm.TaskType, input, prompt string) (*StoryDraft, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         task,
		SystemPrompt: storySystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("llm %s generation failed: %w", task, err)
	}

	text := llm.TrimProse(resp.Text)
	if text == "" {
		return nil, fmt.Errorf("llm %s generation: %w: empty text", task, llm.ErrInvalidOutput)
	}
	return &StoryDraft{
		Text:       text,
		Model:      resp.Model,
		LatencyMs:  resp.LatencyMs,
		InputChars: len([]rune(input)),
	}, nil
}
