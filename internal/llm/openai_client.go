package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// openAIClient implements LLMClient over an OpenAI-compatible chat
// completions API. Gemini is reached through Google's compatible endpoint.
type openAIClient struct {
	cfg      LLMConfig
	client   *openai.Client
	observer Observer
}

// NewOpenAIClient creates an LLMClient for the gemini or openai provider.
func NewOpenAIClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = cfg.ResolvedEndpoint()
	oc.HTTPClient = newHTTPClient()
	return &openAIClient{
		cfg:      cfg,
		client:   openai.NewClientWithConfig(oc),
		observer: observer,
	}, nil
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	return generate(ctx, c.cfg, c.observer, req, c.call)
}

func (c *openAIClient) call(ctx context.Context, p callParams) (string, string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if p.system != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: p.system})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: p.prompt})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: float32(p.temperature),
		TopP:        float32(p.topP),
		MaxTokens:   p.maxTokens,
	})
	if err != nil {
		return "", "", mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", "", fmt.Errorf("%w: response has no choices", ErrInvalidOutput)
	}
	return resp.Choices[0].Message.Content, resp.Model, nil
}

func (c *openAIClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := c.client.ListModels(ctx)
	return err == nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && isPermanentStatus(apiErr.HTTPStatusCode) {
		return fmt.Errorf("%w: %s", ErrRejected, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && isPermanentStatus(reqErr.HTTPStatusCode) {
		return fmt.Errorf("%w: status %d", ErrRejected, reqErr.HTTPStatusCode)
	}
	return err
}
