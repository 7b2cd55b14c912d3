package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/96-neko-96/ploterAI/internal/domain"
	"github.com/96-neko-96/ploterAI/internal/llm"
)

// CharacterDraftService proposes a character from a short concept.
type CharacterDraftService interface {
	Draft(ctx context.Context, concept, notes string) (*domain.Character, error)
}

// WorldDraftService proposes world settings from a genre and keywords.
type WorldDraftService interface {
	Draft(ctx context.Context, genre, keywords string) (*domain.WorldSettings, error)
}

type characterDraftService struct {
	client llm.LLMClient
}

// NewCharacterDraftService creates a CharacterDraftService backed by an LLM client.
func NewCharacterDraftService(client llm.LLMClient) CharacterDraftService {
	return &characterDraftService{client: client}
}

func (s *characterDraftService) Draft(ctx context.Context, concept, notes string) (*domain.Character, error) {
	if strings.TrimSpace(concept) == "" {
		return nil, fmt.Errorf("character draft: %w: concept", ErrEmptyInput)
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskCharacter,
		SystemPrompt: characterDraftSystemPrompt,
		UserPrompt:   buildCharacterPrompt(concept, notes),
	})
	if err != nil {
		return nil, fmt.Errorf("llm character draft failed: %w", err)
	}

	ch, err := llm.ExtractJSON(resp.Text, func(c domain.Character) error {
		return domain.Validate(c)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract character: %w", err)
	}
	// The id is assigned when the character is added to a project.
	ch.ID = ""
	return &ch, nil
}

type worldDraftService struct {
	client llm.LLMClient
}

// NewWorldDraftService creates a WorldDraftService backed by an LLM client.
func NewWorldDraftService(client llm.LLMClient) WorldDraftService {
	return &worldDraftService{client: client}
}

func (s *worldDraftService) Draft(ctx context.Context, genre, keywords string) (*domain.WorldSettings, error) {
	if strings.TrimSpace(genre) == "" && strings.TrimSpace(keywords) == "" {
		return nil, fmt.Errorf("world draft: %w: genre or keywords", ErrEmptyInput)
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskWorld,
		SystemPrompt: worldDraftSystemPrompt,
		UserPrompt:   buildWorldPrompt(genre, keywords),
	})
	if err != nil {
		return nil, fmt.Errorf("llm world draft failed: %w", err)
	}

	world, err := llm.ExtractJSON(resp.Text, func(w domain.WorldSettings) error {
		if w.IsZero() {
			return fmt.Errorf("no world fields present")
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract world settings: %w", err)
	}
	return &world, nil
}
