package orchestrator

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/kryonis/lazysusan/internal/roster"
	"github.com/kryonis/lazysusan/pkg/models"
)

// Coordinator fans one question out to every agent on the panel and
// collects the results in registry order.
type Coordinator struct {
	roster  *roster.Roster
	invoker *Invoker
	log     *zap.Logger
}

// NewCoordinator creates a Coordinator over the given panel.
func NewCoordinator(r *roster.Roster, invoker *Invoker, log *zap.Logger) *Coordinator {
	return &Coordinator{roster: r, invoker: invoker, log: log}
}

// RunAll invokes every agent concurrently and waits for all of them to
// reach a terminal state. The returned slice has exactly one entry per
// registered agent, in registry order, regardless of completion order.
// A failing agent never aborts the others; zero successes is a legal
// outcome.
func (c *Coordinator) RunAll(ctx context.Context, question string, lang models.Language, verbosity models.Verbosity) []models.AgentResult {
	agents := c.roster.Agents()
	results := make([]models.AgentResult, len(agents))

	var wg sync.WaitGroup
	for i, agent := range agents {
		wg.Add(1)
		go func(i int, agent models.AgentDefinition) {
			defer wg.Done()
			// Parallel fan-out: peers run in the same round, so no
			// peer context is passed.
			results[i] = c.invoker.Invoke(ctx, agent, question, lang, "", verbosity)
		}(i, agent)
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	c.log.Info("fan-out complete",
		zap.Int("agents", len(results)),
		zap.Int("failed", failed))

	return results
}
