// Package orchestrator runs one question through the agent panel and
// merges the answers into a single synthesized analysis.
package orchestrator

import (
	"fmt"
	"strings"

	"github.com/kryonis/lazysusan/pkg/models"
)

// agentTemperature is the sampling temperature for every panel call.
const agentTemperature = 0.7

// langInstructions holds the per-language response directive embedded
// in every system prompt.
var langInstructions = map[models.Language]string{
	models.LangEnglish:  "Respond in English only. Be precise, professional, and substantive.",
	models.LangRussian:  "Отвечай только на русском языке. Будь точным, профессиональным и содержательным.",
	models.LangEstonian: "Vasta ainult eesti keeles. Ole täpne, professionaalne ja sisukas.",
}

// langInstruction returns the directive for lang, falling back to English.
func langInstruction(lang models.Language) string {
	if s, ok := langInstructions[lang]; ok {
		return s
	}
	return langInstructions[models.LangEnglish]
}

// agentParams are the per-verbosity invocation limits for panel agents.
type agentParams struct {
	MaxWords  int
	MaxTokens int
}

// agentParamsByVerbosity keys the invocation limits by verbosity so
// the two modes cannot drift apart.
var agentParamsByVerbosity = map[models.Verbosity]agentParams{
	models.VerbosityStandard: {MaxWords: 250, MaxTokens: 600},
	models.VerbosityExtended: {MaxWords: 400, MaxTokens: 800},
}

// agentParamsFor returns the limits for v, defaulting to standard.
func agentParamsFor(v models.Verbosity) agentParams {
	if p, ok := agentParamsByVerbosity[v]; ok {
		return p
	}
	return agentParamsByVerbosity[models.VerbosityStandard]
}

// buildAgentSystemPrompt assembles the system instruction for one
// panel agent: identity, localized role, language directive, length
// ceiling, and the stay-in-role rule.
func buildAgentSystemPrompt(agent models.AgentDefinition, lang models.Language, verbosity models.Verbosity) string {
	role := agent.RoleFor(lang)
	params := agentParamsFor(verbosity)

	return fmt.Sprintf(`You are %s - an elite expert in your domain.
Your role: %s.
%s
Respond with substance and depth (max %d words).
Focus only on your specific role - provide unique value that other agents cannot.
No fluff, no generic statements. Every sentence must add insight.`,
		agent.Name, role, langInstruction(lang), params.MaxWords)
}

// buildAgentUserPrompt returns the user message for one panel agent.
// peerContext is only non-empty when agents run in sequential rounds;
// the parallel fan-out always passes an empty string.
func buildAgentUserPrompt(question, peerContext string) string {
	if peerContext == "" {
		return question
	}
	return fmt.Sprintf("Question: %s\n\nOther agents' responses:\n%s", question, peerContext)
}

// synthesisDelimiter visibly separates agent blocks in the synthesis
// context.
const synthesisDelimiter = "\n\n---\n\n"

// buildSynthesisContext concatenates the successful agent results, in
// registry order, into the context block handed to the conductor.
func buildSynthesisContext(results []models.AgentResult) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		if r.Failed() {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("**%s** (%s):\n%s", r.Agent, r.Role, r.Response))
	}
	return strings.Join(blocks, synthesisDelimiter)
}

// synthesisTemplate is one verbosity mode's conductor configuration.
type synthesisTemplate struct {
	// System builds the conductor system prompt for a language.
	System func(lang models.Language) string
	// MaxTokens is the synthesis response ceiling.
	MaxTokens int
	// Temperature is the synthesis sampling temperature.
	Temperature float64
}

// synthesisTemplates is the strategy table keyed by verbosity. Both
// modes require the conductor to mark consensus and dissent, carry the
// Futurist's horizon, answer the Devil's Advocate, and close with a
// confidence rating.
var synthesisTemplates = map[models.Verbosity]synthesisTemplate{
	models.VerbosityStandard: {
		System:      standardSynthesisPrompt,
		MaxTokens:   1200,
		Temperature: 0.5,
	},
	models.VerbosityExtended: {
		System:      extendedSynthesisPrompt,
		MaxTokens:   4000,
		Temperature: 0.6,
	},
}

// synthesisTemplateFor returns the template for v, defaulting to standard.
func synthesisTemplateFor(v models.Verbosity) synthesisTemplate {
	if t, ok := synthesisTemplates[v]; ok {
		return t
	}
	return synthesisTemplates[models.VerbosityStandard]
}

func standardSynthesisPrompt(lang models.Language) string {
	return fmt.Sprintf(`You are the Conductor - the master synthesizer leading an elite team of AI agents.
Your task: create a definitive, actionable synthesis from 7 expert perspectives.

%s

Rules:
1. Synthesize - don't summarize. Create new insight from the combination.
2. Mark DISSENT clearly when agents fundamentally disagree
3. Highlight CONSENSUS on key points
4. Include the Futurist's long-term implications
5. Address the Devil's Advocate's strongest challenges
6. Be decisive - give clear conclusions, not hedged opinions
7. Maximum 500 words - every word must earn its place
8. End with "Confidence: X/10" and brief justification
9. If relevant, suggest ONE concrete next action`, langInstruction(lang))
}

func extendedSynthesisPrompt(lang models.Language) string {
	return fmt.Sprintf(`You are the Conductor - a master strategic analyst synthesizing insights from 7 expert perspectives.
Your task: Write a comprehensive Strategic Brief (4-5 pages, approximately 1500-2000 words).

%s

Strategic Brief Structure:
1. EXECUTIVE SUMMARY (150-200 words): Key findings and recommendations at a glance
2. SITUATION ANALYSIS (300-400 words):
   - Current state and context
   - Key stakeholders and dynamics
   - Critical factors identified by experts
3. STRATEGIC ASSESSMENT (400-500 words):
   - CONSENSUS: Where experts agree
   - DISSENT: Where experts disagree and why it matters
   - Risk factors and opportunities
4. LONG-TERM IMPLICATIONS (300-400 words):
   - 10-50 year horizon considerations
   - Civilizational perspective
   - Emerging trends and disruptions
5. RECOMMENDATIONS (200-300 words):
   - Priority actions (immediate, medium-term, long-term)
   - Resource requirements
   - Success metrics
6. CONCLUSION (100-150 words): Strategic synthesis and final assessment

Rules:
- Write in professional, authoritative prose
- Use clear section headings
- Be analytical and substantive
- Include specific examples and evidence
- Maintain strategic focus throughout
- End with Confidence rating (X/10) and brief justification`, langInstruction(lang))
}

// buildSynthesisUserPrompt returns the conductor's user message.
func buildSynthesisUserPrompt(question, context string) string {
	return fmt.Sprintf("Topic/Question: %s\n\nExpert perspectives to synthesize:\n\n%s", question, context)
}
