package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHTTPTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("skipping HTTP test: local listener unavailable (%v)", r)
			}
		}()
		srv = httptest.NewServer(handler)
	}()
	t.Cleanup(srv.Close)
	return srv
}

func ollamaConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOllama
	cfg.Model = "llama3.2"
	cfg.Endpoint = endpoint
	return cfg
}

func writeOllama(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(api.GenerateResponse{
		Model:    "llama3.2",
		Response: text,
		Done:     true,
	})
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }

func TestNewClient_SelectsProvider(t *testing.T) {
	c, err := NewClient(ollamaConfig("http://localhost:11434"), nil)
	require.NoError(t, err)
	assert.IsType(t, &ollamaClient{}, c)

	cfg := DefaultConfig()
	cfg.APIKey = "k"
	c, err = NewClient(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &openAIClient{}, c)

	cfg.Provider = "mystery"
	_, err = NewClient(cfg, nil)
	assert.Error(t, err)
}

func TestOllamaClient_Generate_Success(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req api.GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		require.NotNil(t, req.Stream)
		assert.False(t, *req.Stream)
		assert.Equal(t, "system prompt", req.System)
		assert.Equal(t, "user prompt", req.Prompt)
		assert.Equal(t, 0.25, req.Options["temperature"])

		writeOllama(w, "A quiet village wakes.")
	})

	client, err := NewOllamaClient(ollamaConfig(srv.URL), NoopObserver{})
	require.NoError(t, err)

	temp := 0.25
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskPlot,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
		Temperature:  &temp,
	})

	require.NoError(t, err)
	assert.Equal(t, "A quiet village wakes.", resp.Text)
	assert.Equal(t, "llama3.2", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestOllamaClient_Generate_Timeout(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		writeOllama(w, "late")
	})

	cfg := ollamaConfig(srv.URL)
	cfg.Tasks[TaskPlot] = TaskConfig{Temperature: 0.7, MaxTokens: 100, TimeoutMs: 50}

	client, err := NewOllamaClient(cfg, NoopObserver{})
	require.NoError(t, err)
	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskPlot, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOllamaClient_Generate_Unavailable(t *testing.T) {
	cfg := ollamaConfig("http://127.0.0.1:1")
	cfg.MaxRetries = 0

	client, err := NewOllamaClient(cfg, NoopObserver{})
	require.NoError(t, err)
	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskPlot, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOllamaClient_Generate_RetryAfterTimeout(t *testing.T) {
	var calls atomic.Int32
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			time.Sleep(200 * time.Millisecond)
		}
		writeOllama(w, "second time lucky")
	})

	cfg := ollamaConfig(srv.URL)
	cfg.MaxRetries = 1
	cfg.Tasks[TaskMedium] = TaskConfig{Temperature: 0.7, MaxTokens: 100, TimeoutMs: 50}

	var captured LLMCallEvent
	client, err := NewOllamaClient(cfg, &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), GenerateRequest{Task: TaskMedium, UserPrompt: "test"})
	require.NoError(t, err)
	assert.Equal(t, "second time lucky", resp.Text)
	assert.Equal(t, 2, captured.Attempts)
	assert.True(t, captured.Success)
}

func TestOllamaClient_Generate_EmptyResponse(t *testing.T) {
	var calls atomic.Int32
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeOllama(w, "   ")
	})

	cfg := ollamaConfig(srv.URL)
	cfg.MaxRetries = 2

	var captured LLMCallEvent
	client, err := NewOllamaClient(cfg, &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskLong, UserPrompt: "test"})
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "INVALID_OUTPUT", captured.ErrorCode)
}

func TestOllamaClient_Generate_CanceledContext(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeOllama(w, "never read")
	})

	client, err := NewOllamaClient(ollamaConfig(srv.URL), NoopObserver{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Generate(ctx, GenerateRequest{Task: TaskPlot, UserPrompt: "test"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOllamaClient_ObserverReceivesEvent(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeOllama(w, "ok")
	})

	var captured LLMCallEvent
	client, err := NewOllamaClient(ollamaConfig(srv.URL), &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskCharacter, UserPrompt: "test"})
	require.NoError(t, err)

	assert.Equal(t, TaskCharacter, captured.Task)
	assert.Equal(t, ProviderOllama, captured.Provider)
	assert.Equal(t, "llama3.2", captured.Model)
	assert.Equal(t, 1, captured.Attempts)
	assert.True(t, captured.Success)
	assert.Empty(t, captured.ErrorCode)
}

func TestOllamaClient_Available(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	client, err := NewOllamaClient(ollamaConfig(srv.URL), nil)
	require.NoError(t, err)
	assert.True(t, client.Available(context.Background()))

	down, err := NewOllamaClient(ollamaConfig("http://127.0.0.1:1"), nil)
	require.NoError(t, err)
	assert.False(t, down.Available(context.Background()))
}
