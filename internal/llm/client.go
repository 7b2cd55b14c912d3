package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the provider is reachable.
	Available(ctx context.Context) bool
}

// NewClient builds the client for cfg.Provider.
func NewClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderOllama:
		return NewOllamaClient(cfg, observer)
	case ProviderGemini, ProviderOpenAI, "":
		return NewOpenAIClient(cfg, observer)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// callParams is one resolved request as the provider sees it.
type callParams struct {
	system      string
	prompt      string
	temperature float64
	topP        float64
	maxTokens   int
}

// callFunc performs a single provider round trip.
type callFunc func(ctx context.Context, p callParams) (text, model string, err error)

// generate runs call with per-attempt timeouts and retries, and reports the
// outcome to observer. Rejections are not retried.
func generate(ctx context.Context, cfg LLMConfig, observer Observer, req GenerateRequest, call callFunc) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := cfg.Tasks[req.Task]
	p := callParams{
		system:      req.SystemPrompt,
		prompt:      req.UserPrompt,
		temperature: taskCfg.Temperature,
		topP:        taskCfg.TopP,
		maxTokens:   taskCfg.MaxTokens,
	}
	if req.Temperature != nil {
		p.temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		p.maxTokens = *req.MaxTokens
	}
	timeout := time.Duration(cfg.TaskTimeout(req.Task)) * time.Millisecond

	var (
		lastErr  error
		attempts int
	)
	for attempts < 1+cfg.MaxRetries {
		attempts++
		text, model, err := attempt(ctx, timeout, p, call)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			observer.OnCallComplete(LLMCallEvent{
				Task:      req.Task,
				Provider:  cfg.Provider,
				Model:     cfg.Model,
				LatencyMs: latency,
				Attempts:  attempts,
				Success:   true,
			})
			return &GenerateResponse{
				Text:      text,
				Model:     model,
				LatencyMs: latency,
			}, nil
		}
		lastErr = err

		if ctx.Err() != nil || errors.Is(err, ErrRejected) {
			break
		}
	}

	finalErr := classify(ctx, lastErr)
	observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  attempts,
		Success:   false,
		ErrorCode: errorCode(finalErr),
	})
	return nil, finalErr
}

func attempt(ctx context.Context, timeout time.Duration, p callParams, call callFunc) (string, string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, model, err := call(attemptCtx, p)
	if err != nil {
		if attemptCtx.Err() != nil {
			return "", "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", "", fmt.Errorf("%w: empty response", ErrInvalidOutput)
	}
	return text, model, nil
}

func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return ctx.Err()
	case errors.Is(err, ErrTimeout), ctx.Err() != nil:
		return ErrTimeout
	case errors.Is(err, ErrRejected):
		return err
	case isConnectionError(err):
		return ErrUnavailable
	default:
		return fmt.Errorf("%w: %w", ErrRetryExhausted, err)
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrRejected):
		return "REJECTED"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}
