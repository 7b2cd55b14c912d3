package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.APIKey = "test-key"
	return cfg
}

func writeCompletion(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
		ID:    "cmpl-1",
		Model: "gemini-2.0-flash",
		Choices: []openai.ChatCompletionChoice{{
			Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: text},
			FinishReason: openai.FinishReasonStop,
		}},
	})
}

func writeAPIError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"message": msg, "type": "invalid_request_error"},
	})
}

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = ""
	_, err := NewOpenAIClient(cfg, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestOpenAIClient_Generate_Success(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gemini-2.0-flash", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Equal(t, "be a novelist", req.Messages[0].Content)
		assert.Equal(t, "write scene one", req.Messages[1].Content)
		assert.Equal(t, 1234, req.MaxTokens)

		writeCompletion(w, "The rain had not stopped for three days.")
	})

	client, err := NewOpenAIClient(geminiConfig(srv.URL), NoopObserver{})
	require.NoError(t, err)

	maxTokens := 1234
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskLong,
		SystemPrompt: "be a novelist",
		UserPrompt:   "write scene one",
		MaxTokens:    &maxTokens,
	})
	require.NoError(t, err)
	assert.Equal(t, "The rain had not stopped for three days.", resp.Text)
	assert.Equal(t, "gemini-2.0-flash", resp.Model)
}

func TestOpenAIClient_Generate_NoSystemPrompt(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[0].Role)
		writeCompletion(w, "ok")
	})

	client, err := NewOpenAIClient(geminiConfig(srv.URL), nil)
	require.NoError(t, err)
	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskPlot, UserPrompt: "hi"})
	require.NoError(t, err)
}

func TestOpenAIClient_Generate_RejectedIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeAPIError(w, http.StatusUnauthorized, "API key not valid")
	})

	cfg := geminiConfig(srv.URL)
	cfg.MaxRetries = 3

	var captured LLMCallEvent
	client, err := NewOpenAIClient(cfg, &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskPlot, UserPrompt: "hi"})
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "API key not valid")
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "REJECTED", captured.ErrorCode)
}

func TestOpenAIClient_Generate_RateLimitIsRetried(t *testing.T) {
	var calls atomic.Int32
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			writeAPIError(w, http.StatusTooManyRequests, "slow down")
			return
		}
		writeCompletion(w, "recovered")
	})

	client, err := NewOpenAIClient(geminiConfig(srv.URL), nil)
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), GenerateRequest{Task: TaskMedium, UserPrompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "recovered", resp.Text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestOpenAIClient_Generate_ServerErrorExhaustsRetries(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusInternalServerError, "boom")
	})

	client, err := NewOpenAIClient(geminiConfig(srv.URL), nil)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskPlot, UserPrompt: "hi"})
	assert.ErrorIs(t, err, ErrRetryExhausted)
}

func TestOpenAIClient_Generate_NoChoices(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","model":"m","choices":[]}`))
	})

	cfg := geminiConfig(srv.URL)
	cfg.MaxRetries = 0
	client, err := NewOpenAIClient(cfg, nil)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskPlot, UserPrompt: "hi"})
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestOpenAIClient_Available(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[]}`))
	})

	client, err := NewOpenAIClient(geminiConfig(srv.URL), nil)
	require.NoError(t, err)
	assert.True(t, client.Available(context.Background()))
}
