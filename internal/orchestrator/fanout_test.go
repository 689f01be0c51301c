package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kryonis/lazysusan/internal/llm"
	"github.com/kryonis/lazysusan/internal/roster"
	"github.com/kryonis/lazysusan/pkg/models"
)

// newTestCoordinator builds a coordinator over the default panel with
// the given gateway script.
func newTestCoordinator(respond func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error)) (*Coordinator, *llm.MockGateway) {
	gw := llm.NewMockGateway(respond)
	iv := NewInvoker(gw, nil, zap.NewNop(), 0)
	return NewCoordinator(roster.Default(), iv, zap.NewNop()), gw
}

func TestRunAllReturnsRegistryOrder(t *testing.T) {
	// Later agents answer faster than earlier ones; output order must
	// still match the panel.
	names := []string{"Architect", "Red Team", "Synthesizer", "Facts", "Style", "Futurist", "Devil's Advocate"}
	coord, _ := newTestCoordinator(func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
		d := 10 * time.Millisecond
		for i, n := range names {
			if strings.Contains(req.System, "You are "+n) {
				d = time.Duration(len(names)-i) * 10 * time.Millisecond
			}
		}
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return &llm.CompletionResponse{Content: "answer", Model: req.Model}, nil
	})

	results := coord.RunAll(context.Background(), "Q", models.LangEnglish, models.VerbosityStandard)

	if len(results) != 7 {
		t.Fatalf("expected 7 results, got %d", len(results))
	}
	wantOrder := []string{"Architect", "Red Team", "Synthesizer", "Facts", "Style", "Futurist", "Devil's Advocate"}
	for i, r := range results {
		if r.Agent != wantOrder[i] {
			t.Errorf("result %d: expected %q, got %q", i, wantOrder[i], r.Agent)
		}
	}
}

func TestRunAllSingleFailureDoesNotAbortOthers(t *testing.T) {
	coord, _ := newTestCoordinator(func(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
		if strings.Contains(req.System, "You are Facts") {
			return nil, errors.New("rate limited")
		}
		return &llm.CompletionResponse{Content: "answer", Model: req.Model}, nil
	})

	results := coord.RunAll(context.Background(), "Should we adopt policy P?", models.LangEnglish, models.VerbosityStandard)

	if len(results) != 7 {
		t.Fatalf("expected 7 results, got %d", len(results))
	}
	var failures int
	for _, r := range results {
		if r.Failed() {
			failures++
			if r.Agent != "Facts" {
				t.Errorf("unexpected failed agent %q", r.Agent)
			}
			if !strings.Contains(r.Err, "rate limited") {
				t.Errorf("failure message = %q", r.Err)
			}
		}
	}
	if failures != 1 {
		t.Errorf("expected exactly 1 failure, got %d", failures)
	}
}

func TestRunAllToleratesZeroSuccesses(t *testing.T) {
	coord, _ := newTestCoordinator(func(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
		return nil, errors.New("gateway down")
	})

	results := coord.RunAll(context.Background(), "Q", models.LangEnglish, models.VerbosityStandard)

	if len(results) != 7 {
		t.Fatalf("expected 7 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Failed() {
			t.Errorf("agent %q should have failed", r.Agent)
		}
	}
}

func TestRunAllFailurePatternIsDeterministic(t *testing.T) {
	run := func() []models.AgentResult {
		coord, _ := newTestCoordinator(func(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			if strings.Contains(req.System, "You are Red Team") {
				return nil, errors.New("quota exceeded")
			}
			return &llm.CompletionResponse{Content: "fine", Model: req.Model}, nil
		})
		return coord.RunAll(context.Background(), "Q", models.LangEnglish, models.VerbosityStandard)
	}

	first := run()
	for i := 0; i < 3; i++ {
		again := run()
		for j := range first {
			if first[j].Agent != again[j].Agent || first[j].Failed() != again[j].Failed() {
				t.Fatalf("run %d: pattern diverged at slot %d", i, j)
			}
		}
	}
}

func TestRunAllInvokesEveryAgentOnce(t *testing.T) {
	coord, gw := newTestCoordinator(func(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
		return &llm.CompletionResponse{Content: "ok", Model: req.Model}, nil
	})

	coord.RunAll(context.Background(), "Q", models.LangEnglish, models.VerbosityStandard)

	if gw.CallCount() != 7 {
		t.Errorf("expected 7 gateway calls, got %d", gw.CallCount())
	}
}
