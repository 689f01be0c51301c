// Package llm provides the completion gateway used for every remote
// model call. All agent models are addressed through a single
// OpenRouter-compatible endpoint by model identifier.
package llm

import (
	"context"
	"errors"
)

// ErrMissingAPIKey indicates the gateway credential was not configured.
// It must be detected before any remote call is attempted.
var ErrMissingAPIKey = errors.New("OPENROUTER_API_KEY is not set")

// CompletionRequest carries one system/user message pair to a model.
type CompletionRequest struct {
	// Model is the gateway-side model identifier (e.g. "openai/gpt-4o").
	Model string
	// System is the system instruction.
	System string
	// User is the user message.
	User string
	// MaxTokens is the response token ceiling.
	MaxTokens int
	// Temperature is the sampling temperature.
	Temperature float64
}

// CompletionResponse holds the generated text of a completion call.
type CompletionResponse struct {
	// Content is the generated text of the first choice.
	Content string
	// Model echoes the model that served the request.
	Model string
}

// Gateway is the remote completion service brokering calls to the
// backing models. Implementations must be safe for concurrent use.
type Gateway interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
