package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kryonis/lazysusan/internal/llm"
	"github.com/kryonis/lazysusan/internal/observability"
	"github.com/kryonis/lazysusan/internal/roster"
	"github.com/kryonis/lazysusan/pkg/models"
)

// ErrMissingQuestion indicates the inbound question was empty.
var ErrMissingQuestion = errors.New("question is required")

// MaxDocumentChars caps the attached document text appended to the
// question before fan-out.
const MaxDocumentChars = 15000

// State is the phase an orchestration session is in. Sessions only
// move forward: Received → FanningOut → Synthesizing → Completed.
type State string

const (
	// StateReceived validates the request before any gateway call.
	StateReceived State = "received"
	// StateFanningOut runs the concurrent panel calls.
	StateFanningOut State = "fanning_out"
	// StateSynthesizing runs the conductor call.
	StateSynthesizing State = "synthesizing"
	// StateCompleted assembles the final result.
	StateCompleted State = "completed"
)

// Request is one inbound question with its session parameters.
// Requests are created per call and never persisted.
type Request struct {
	// Question is the question text. Required.
	Question string
	// Lang is the response language.
	Lang models.Language
	// Verbosity selects the synthesis mode.
	Verbosity models.Verbosity
	// DocumentText is optional pre-extracted document text. It is
	// truncated to MaxDocumentChars before use.
	DocumentText string
}

// Config assembles an Orchestrator.
type Config struct {
	// Gateway is the completion service. Nil means no credential is
	// configured and every session fails fast.
	Gateway llm.Gateway
	// Roster is the agent panel. Defaults to the built-in panel.
	Roster *roster.Roster
	// ConductorModel overrides the synthesis model.
	ConductorModel string
	// AgentTimeout bounds each panel call.
	AgentTimeout time.Duration
	// SynthesisTimeout bounds the conductor call.
	SynthesisTimeout time.Duration
	// Metrics is optional.
	Metrics *observability.Metrics
	// Logger is optional.
	Logger *zap.Logger
}

// Orchestrator ties one question to one fan-out plus synthesis cycle.
// It is stateless across sessions and safe for concurrent use; the
// only shared state is the read-only roster.
type Orchestrator struct {
	roster      *roster.Roster
	coordinator *Coordinator
	synthesizer *Synthesizer
	metrics     *observability.Metrics
	log         *zap.Logger
	configured  bool
}

// New creates an Orchestrator. cfg.Gateway may be nil when no
// credential is configured; Run then fails fast with ErrMissingAPIKey
// before attempting any remote call.
func New(cfg Config) *Orchestrator {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	r := cfg.Roster
	if r == nil {
		r = roster.Default()
	}

	o := &Orchestrator{
		roster:     r,
		metrics:    cfg.Metrics,
		log:        log,
		configured: cfg.Gateway != nil,
	}
	if o.configured {
		invoker := NewInvoker(cfg.Gateway, cfg.Metrics, log, cfg.AgentTimeout)
		o.coordinator = NewCoordinator(r, invoker, log)
		o.synthesizer = NewSynthesizer(cfg.Gateway, cfg.Metrics, log, cfg.ConductorModel, cfg.SynthesisTimeout)
	}
	return o
}

// Run executes one session. The only error returns are
// configuration-class failures detected in the Received state; agent
// and synthesis failures are carried inside the result.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*models.Result, error) {
	id := uuid.New().String()
	log := o.log.With(zap.String("session", id))

	// Received: fail fast, no partial work.
	log.Debug("session state", zap.String("state", string(StateReceived)))
	if strings.TrimSpace(req.Question) == "" {
		o.metrics.RecordSession(string(req.Verbosity), "rejected")
		return nil, ErrMissingQuestion
	}
	if !o.configured {
		o.metrics.RecordSession(string(req.Verbosity), "rejected")
		return nil, llm.ErrMissingAPIKey
	}

	lang := req.Lang
	if !lang.Valid() {
		lang = models.LangEnglish
	}
	verbosity := req.Verbosity
	if !verbosity.Valid() {
		verbosity = models.VerbosityStandard
	}

	fullQuestion := req.Question
	if req.DocumentText != "" {
		fullQuestion = fmt.Sprintf("%s\n\n---\nDOCUMENT CONTENT:\n%s",
			req.Question, truncate(req.DocumentText, MaxDocumentChars))
	}

	log.Info("session state", zap.String("state", string(StateFanningOut)),
		zap.String("lang", string(lang)),
		zap.String("verbosity", string(verbosity)),
		zap.Int("agents", o.roster.Count()))
	agentResults := o.coordinator.RunAll(ctx, fullQuestion, lang, verbosity)

	log.Info("session state", zap.String("state", string(StateSynthesizing)))
	synthesis := o.synthesizer.Synthesize(ctx, fullQuestion, agentResults, lang, verbosity)

	log.Info("session state", zap.String("state", string(StateCompleted)))
	o.metrics.RecordSession(string(verbosity), "completed")

	return &models.Result{
		ID:        id,
		Question:  req.Question,
		Lang:      lang,
		Verbosity: verbosity,
		Timestamp: time.Now().UTC(),
		Agents:    agentResults,
		Synthesis: synthesis,
	}, nil
}

// truncate cuts s to at most max bytes, matching the fixed document
// limit of the upstream extractors.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
