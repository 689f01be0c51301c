package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	// DefaultBaseURL is the OpenRouter chat-completions endpoint.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// defaultModel seeds the underlying client; every call overrides it
	// with the per-request model identifier.
	defaultModel = "anthropic/claude-opus-4"
)

// OpenRouterConfig contains configuration for the OpenRouter gateway.
type OpenRouterConfig struct {
	// APIKey is the bearer token. Required.
	APIKey string
	// BaseURL overrides the OpenRouter endpoint. Optional.
	BaseURL string
	// Referer is sent as HTTP-Referer for OpenRouter app attribution.
	Referer string
	// Title is sent as X-Title for OpenRouter app attribution.
	Title string
}

// OpenRouter is a Gateway backed by the OpenRouter API. OpenRouter
// speaks the OpenAI chat-completions wire format, so the client is an
// OpenAI client pointed at a different base URL.
type OpenRouter struct {
	client *openai.LLM
}

// NewOpenRouter creates an OpenRouter gateway.
// Returns ErrMissingAPIKey if the credential is absent.
func NewOpenRouter(cfg OpenRouterConfig) (*OpenRouter, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := &http.Client{
		Transport: &attributionTransport{
			referer: cfg.Referer,
			title:   cfg.Title,
			next:    http.DefaultTransport,
		},
	}

	client, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(baseURL),
		openai.WithModel(defaultModel),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("create openrouter client: %w", err)
	}

	return &OpenRouter{client: client}, nil
}

// Complete sends one system/user message pair to the requested model.
func (g *OpenRouter) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	messages := []llms.MessageContent{}
	if req.System != "" {
		messages = append(messages, llms.MessageContent{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(req.System)},
		})
	}
	messages = append(messages, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(req.User)},
	})

	opts := []llms.CallOption{
		llms.WithModel(req.Model),
		llms.WithTemperature(req.Temperature),
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}

	resp, err := g.client.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return nil, fmt.Errorf("completion call to %s: %w", req.Model, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("completion call to %s: empty response", req.Model)
	}

	return &CompletionResponse{
		Content: resp.Choices[0].Content,
		Model:   req.Model,
	}, nil
}

// attributionTransport injects the OpenRouter attribution headers on
// every outbound request.
type attributionTransport struct {
	referer string
	title   string
	next    http.RoundTripper
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		req.Header.Set("X-Title", t.title)
	}
	return t.next.RoundTrip(req)
}
