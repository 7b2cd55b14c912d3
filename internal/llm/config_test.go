package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_TargetsGemini(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, GeminiEndpoint, cfg.ResolvedEndpoint())
	for _, task := range StoryTasks {
		assert.Contains(t, cfg.Tasks, task)
	}
	assert.Equal(t, 180000, cfg.TaskTimeout(TaskLong))
}

func TestLoadConfig_NoEnvKeepsBase(t *testing.T) {
	base := DefaultConfig()
	base.Model = "custom"

	cfg, err := LoadConfig(base)
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.Model)
	assert.Equal(t, base.Tasks, cfg.Tasks)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PLOTER_LLM_PROVIDER", "Ollama")
	t.Setenv("PLOTER_LLM_MODEL", "llama3.2")
	t.Setenv("PLOTER_LLM_TIMEOUT_MS", "9000")
	t.Setenv("PLOTER_LLM_MAX_RETRIES", "0")
	t.Setenv("PLOTER_LLM_PLOT_TIMEOUT_MS", "15000")
	t.Setenv("PLOTER_LLM_LOG_CALLS", "true")

	cfg, err := LoadConfig(DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, "llama3.2", cfg.Model)
	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.True(t, cfg.LogCalls)
	assert.Equal(t, 15000, cfg.TaskTimeout(TaskPlot))
	assert.Equal(t, 120000, cfg.TaskTimeout(TaskMedium))
	assert.Equal(t, "http://localhost:11434", cfg.ResolvedEndpoint())
}

func TestLoadConfig_DoesNotMutateBase(t *testing.T) {
	t.Setenv("PLOTER_LLM_LONG_TIMEOUT_MS", "1")

	base := DefaultConfig()
	_, err := LoadConfig(base)
	require.NoError(t, err)
	assert.Equal(t, 180000, base.TaskTimeout(TaskLong))
}

func TestLoadConfig_InvalidValue(t *testing.T) {
	t.Setenv("PLOTER_LLM_TIMEOUT_MS", "not-a-number")

	base := DefaultConfig()
	cfg, err := LoadConfig(base)
	assert.Error(t, err)
	assert.Equal(t, base.TimeoutMs, cfg.TimeoutMs)
}

func TestSetStoryParams_OnlyStoryTasks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetStoryParams(1.2, 2000, 0.5)

	for _, task := range StoryTasks {
		assert.Equal(t, 1.2, cfg.Tasks[task].Temperature)
		assert.Equal(t, 2000, cfg.Tasks[task].MaxTokens)
		assert.Equal(t, 0.5, cfg.Tasks[task].TopP)
	}
	assert.Equal(t, 0.8, cfg.Tasks[TaskCharacter].Temperature)
	assert.Equal(t, 2048, cfg.Tasks[TaskWorld].MaxTokens)
}

func TestSetStoryParams_ZeroMaxTokensKeepsDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetStoryParams(0.3, 0, 0.9)
	assert.Equal(t, 8000, cfg.Tasks[TaskLong].MaxTokens)
}

func TestResolvedEndpoint_TrimsSlash(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Endpoint = "http://proxy.local/v1/"
	assert.Equal(t, "http://proxy.local/v1", cfg.ResolvedEndpoint())

	cfg.Endpoint = ""
	cfg.Provider = ProviderOpenAI
	assert.Equal(t, "https://api.openai.com/v1", cfg.ResolvedEndpoint())
}
