package llm

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskPlot      TaskType = "plot"
	TaskMedium    TaskType = "medium"
	TaskLong      TaskType = "long"
	TaskCharacter TaskType = "character"
	TaskWorld     TaskType = "world"
)

// StoryTasks are the three drafting stages; user generation settings apply
// to these and not to the structured drafts.
var StoryTasks = []TaskType{TaskPlot, TaskMedium, TaskLong}

// Provider names accepted in LLMConfig.Provider.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// GeminiEndpoint is Google's OpenAI-compatible API root.
const GeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/openai"

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TopP        float64
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Provider   string
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig targeting Gemini with the stored
// generation defaults.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    true,
		LogCalls:   false,
		Provider:   ProviderGemini,
		Model:      "gemini-2.0-flash",
		TimeoutMs:  60000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskPlot:      {Temperature: 0.7, MaxTokens: 4000, TopP: 0.9, TimeoutMs: 60000},
			TaskMedium:    {Temperature: 0.7, MaxTokens: 4000, TopP: 0.9, TimeoutMs: 120000},
			TaskLong:      {Temperature: 0.7, MaxTokens: 8000, TopP: 0.9, TimeoutMs: 180000},
			TaskCharacter: {Temperature: 0.8, MaxTokens: 2048, TopP: 0.9, TimeoutMs: 45000},
			TaskWorld:     {Temperature: 0.8, MaxTokens: 2048, TopP: 0.9, TimeoutMs: 45000},
		},
	}
}

// envOverrides mirrors the PLOTER_LLM_* variables. Nil means unset.
type envOverrides struct {
	Enabled            *bool   `envconfig:"ENABLED"`
	LogCalls           *bool   `envconfig:"LOG_CALLS"`
	Provider           *string `envconfig:"PROVIDER"`
	Endpoint           *string `envconfig:"ENDPOINT"`
	Model              *string `envconfig:"MODEL"`
	APIKey             *string `envconfig:"API_KEY"`
	TimeoutMs          *int    `envconfig:"TIMEOUT_MS"`
	MaxRetries         *int    `envconfig:"MAX_RETRIES"`
	PlotTimeoutMs      *int    `envconfig:"PLOT_TIMEOUT_MS"`
	MediumTimeoutMs    *int    `envconfig:"MEDIUM_TIMEOUT_MS"`
	LongTimeoutMs      *int    `envconfig:"LONG_TIMEOUT_MS"`
	CharacterTimeoutMs *int    `envconfig:"CHARACTER_TIMEOUT_MS"`
	WorldTimeoutMs     *int    `envconfig:"WORLD_TIMEOUT_MS"`
}

// LoadConfig applies PLOTER_LLM_* environment overrides on top of base.
func LoadConfig(base LLMConfig) (LLMConfig, error) {
	var env envOverrides
	if err := envconfig.Process("PLOTER_LLM", &env); err != nil {
		return base, fmt.Errorf("reading PLOTER_LLM_* environment: %w", err)
	}

	cfg := base.clone()
	if env.Enabled != nil {
		cfg.Enabled = *env.Enabled
	}
	if env.LogCalls != nil {
		cfg.LogCalls = *env.LogCalls
	}
	if env.Provider != nil && *env.Provider != "" {
		cfg.Provider = strings.ToLower(*env.Provider)
	}
	if env.Endpoint != nil && *env.Endpoint != "" {
		cfg.Endpoint = *env.Endpoint
	}
	if env.Model != nil && *env.Model != "" {
		cfg.Model = *env.Model
	}
	if env.APIKey != nil && *env.APIKey != "" {
		cfg.APIKey = *env.APIKey
	}
	if env.TimeoutMs != nil && *env.TimeoutMs > 0 {
		cfg.TimeoutMs = *env.TimeoutMs
	}
	if env.MaxRetries != nil && *env.MaxRetries >= 0 {
		cfg.MaxRetries = *env.MaxRetries
	}

	applyTaskTimeout(&cfg, TaskPlot, env.PlotTimeoutMs)
	applyTaskTimeout(&cfg, TaskMedium, env.MediumTimeoutMs)
	applyTaskTimeout(&cfg, TaskLong, env.LongTimeoutMs)
	applyTaskTimeout(&cfg, TaskCharacter, env.CharacterTimeoutMs)
	applyTaskTimeout(&cfg, TaskWorld, env.WorldTimeoutMs)

	return cfg, nil
}

// SetStoryParams applies user generation settings to the drafting stages.
func (c *LLMConfig) SetStoryParams(temperature float64, maxTokens int, topP float64) {
	for _, task := range StoryTasks {
		tc := c.Tasks[task]
		tc.Temperature = temperature
		tc.TopP = topP
		if maxTokens > 0 {
			tc.MaxTokens = maxTokens
		}
		c.Tasks[task] = tc
	}
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// ResolvedEndpoint returns Endpoint, or the provider's default root.
func (c LLMConfig) ResolvedEndpoint() string {
	if c.Endpoint != "" {
		return strings.TrimSuffix(c.Endpoint, "/")
	}
	switch c.Provider {
	case ProviderOllama:
		return "http://localhost:11434"
	case ProviderOpenAI:
		return "https://api.openai.com/v1"
	default:
		return GeminiEndpoint
	}
}

func (c LLMConfig) clone() LLMConfig {
	out := c
	out.Tasks = make(map[TaskType]TaskConfig, len(c.Tasks))
	for k, v := range c.Tasks {
		out.Tasks[k] = v
	}
	return out
}

func applyTaskTimeout(cfg *LLMConfig, task TaskType, ms *int) {
	if ms == nil || *ms <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = *ms
	cfg.Tasks[task] = tc
}
