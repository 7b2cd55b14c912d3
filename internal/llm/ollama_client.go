package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// ollamaClient implements LLMClient against a local Ollama server.
type ollamaClient struct {
	cfg      LLMConfig
	api      *api.Client
	observer Observer
}

// NewOllamaClient creates an LLMClient that talks to an Ollama instance.
func NewOllamaClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	base, err := url.Parse(cfg.ResolvedEndpoint())
	if err != nil {
		return nil, fmt.Errorf("parsing ollama endpoint %q: %w", cfg.Endpoint, err)
	}
	return &ollamaClient{
		cfg:      cfg,
		api:      api.NewClient(base, newHTTPClient()),
		observer: observer,
	}, nil
}

func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	return generate(ctx, c.cfg, c.observer, req, c.call)
}

func (c *ollamaClient) call(ctx context.Context, p callParams) (string, string, error) {
	stream := false
	body := &api.GenerateRequest{
		Model:  c.cfg.Model,
		System: p.system,
		Prompt: p.prompt,
		Stream: &stream,
		Options: map[string]any{
			"temperature": p.temperature,
			"top_p":       p.topP,
			"num_predict": p.maxTokens,
		},
	}

	var (
		text  strings.Builder
		model string
	)
	err := c.api.Generate(ctx, body, func(resp api.GenerateResponse) error {
		text.WriteString(resp.Response)
		model = resp.Model
		return nil
	})
	if err != nil {
		var statusErr api.StatusError
		if errors.As(err, &statusErr) && isPermanentStatus(statusErr.StatusCode) {
			return "", "", fmt.Errorf("%w: %s", ErrRejected, statusErr.Error())
		}
		return "", "", err
	}
	return text.String(), model, nil
}

func (c *ollamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.api.Heartbeat(ctx) == nil
}

// isPermanentStatus reports client errors other than rate limiting.
func isPermanentStatus(code int) bool {
	return code >= http.StatusBadRequest && code < http.StatusInternalServerError &&
		code != http.StatusTooManyRequests && code != http.StatusRequestTimeout
}
