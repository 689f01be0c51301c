package orchestrator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kryonis/lazysusan/internal/llm"
	"github.com/kryonis/lazysusan/internal/observability"
	"github.com/kryonis/lazysusan/pkg/models"
)

// DefaultAgentTimeout bounds one panel agent call so a hung model
// cannot stall the whole session at the fan-out join point.
const DefaultAgentTimeout = 90 * time.Second

// Invoker issues a single panel agent call and normalizes the outcome
// into an AgentResult. It never returns an error: gateway and
// transport failures become the failure variant.
type Invoker struct {
	gateway llm.Gateway
	metrics *observability.Metrics
	log     *zap.Logger
	timeout time.Duration
}

// NewInvoker creates an Invoker. A zero timeout falls back to
// DefaultAgentTimeout.
func NewInvoker(gateway llm.Gateway, metrics *observability.Metrics, log *zap.Logger, timeout time.Duration) *Invoker {
	if timeout <= 0 {
		timeout = DefaultAgentTimeout
	}
	return &Invoker{
		gateway: gateway,
		metrics: metrics,
		log:     log,
		timeout: timeout,
	}
}

// Invoke asks one agent the question and returns its result. The call
// is pure with respect to the caller's state: a failing agent is
// recorded in its result slot and must never abort its peers.
func (iv *Invoker) Invoke(ctx context.Context, agent models.AgentDefinition, question string, lang models.Language, peerContext string, verbosity models.Verbosity) models.AgentResult {
	role := agent.RoleFor(lang)
	params := agentParamsFor(verbosity)

	callCtx, cancel := context.WithTimeout(ctx, iv.timeout)
	defer cancel()

	start := time.Now()
	resp, err := iv.gateway.Complete(callCtx, llm.CompletionRequest{
		Model:       agent.Model,
		System:      buildAgentSystemPrompt(agent, lang, verbosity),
		User:        buildAgentUserPrompt(question, peerContext),
		MaxTokens:   params.MaxTokens,
		Temperature: agentTemperature,
	})
	iv.metrics.ObserveGatewayCall(agent.Model, time.Since(start))

	if err != nil {
		iv.metrics.RecordAgentCall(agent.ID, "error")
		iv.log.Warn("agent call failed",
			zap.String("agent", agent.ID),
			zap.String("model", agent.Model),
			zap.Error(err))
		return models.AgentResult{Agent: agent.Name, Err: err.Error()}
	}

	iv.metrics.RecordAgentCall(agent.ID, "ok")
	return models.AgentResult{
		Agent:    agent.Name,
		Role:     role,
		Model:    agent.Model,
		Response: resp.Content,
	}
}
