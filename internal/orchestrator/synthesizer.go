package orchestrator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kryonis/lazysusan/internal/llm"
	"github.com/kryonis/lazysusan/internal/observability"
	"github.com/kryonis/lazysusan/pkg/models"
)

// DefaultConductorModel is the high-capability model that merges the
// panel's answers.
const DefaultConductorModel = "anthropic/claude-opus-4"

// DefaultSynthesisTimeout bounds the conductor call.
const DefaultSynthesisTimeout = 3 * time.Minute

// Synthesizer merges the successful agent results into one analysis.
type Synthesizer struct {
	gateway llm.Gateway
	metrics *observability.Metrics
	log     *zap.Logger
	model   string
	timeout time.Duration
}

// NewSynthesizer creates a Synthesizer. Empty model and zero timeout
// fall back to the defaults.
func NewSynthesizer(gateway llm.Gateway, metrics *observability.Metrics, log *zap.Logger, model string, timeout time.Duration) *Synthesizer {
	if model == "" {
		model = DefaultConductorModel
	}
	if timeout <= 0 {
		timeout = DefaultSynthesisTimeout
	}
	return &Synthesizer{
		gateway: gateway,
		metrics: metrics,
		log:     log,
		model:   model,
		timeout: timeout,
	}
}

// Synthesize builds the conductor prompt from the successful results
// and returns the merged text. Synthesis failure is a degraded result,
// not a fatal one: on any gateway or transport error the returned
// string is a human-readable failure message.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, results []models.AgentResult, lang models.Language, verbosity models.Verbosity) string {
	tmpl := synthesisTemplateFor(verbosity)
	context_ := buildSynthesisContext(results)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.gateway.Complete(callCtx, llm.CompletionRequest{
		Model:       s.model,
		System:      tmpl.System(lang),
		User:        buildSynthesisUserPrompt(question, context_),
		MaxTokens:   tmpl.MaxTokens,
		Temperature: tmpl.Temperature,
	})
	s.metrics.ObserveGatewayCall(s.model, time.Since(start))

	if err != nil {
		s.log.Warn("synthesis call failed",
			zap.String("model", s.model),
			zap.Error(err))
		return fmt.Sprintf("Synthesis error: %v", err)
	}

	return resp.Content
}
