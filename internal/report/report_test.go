package report

import (
	"strings"
	"testing"
	"time"

	"github.com/kryonis/lazysusan/pkg/models"
)

func sampleResult(lang models.Language, verbosity models.Verbosity) *models.Result {
	return &models.Result{
		ID:        "sess-1",
		Question:  "Where should we expand next?",
		Lang:      lang,
		Verbosity: verbosity,
		Timestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Agents: []models.AgentResult{
			{Agent: "Architect", Role: "systems analyst", Model: "anthropic/claude-opus-4", Response: "build the scaffold"},
			{Agent: "Red Team", Role: "critic", Model: "openai/gpt-4o", Err: "rate limited"},
			{Agent: "Facts", Role: "fact checker", Model: "perplexity/sonar-pro", Response: "numbers check out"},
		},
		Synthesis: "expand east",
	}
}

func TestMarkdownStandardReport(t *testing.T) {
	md := Markdown(sampleResult(models.LangEnglish, models.VerbosityStandard))

	for _, want := range []string{
		"# KRYONIS Analysis Report",
		"## QUESTION",
		"Where should we expand next?",
		"## CONDUCTOR'S SYNTHESIS",
		"expand east",
		"## AGENT RESPONSES",
		"### Architect (KRYONIS-Α)",
		"### Facts (KRYONIS-Δ)",
		"Generated by KRYONIS Lazy Susan PRO",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestMarkdownSkipsFailedAgents(t *testing.T) {
	md := Markdown(sampleResult(models.LangEnglish, models.VerbosityStandard))

	if strings.Contains(md, "Red Team") {
		t.Error("failed agent must not appear in the report")
	}
	if strings.Contains(md, "rate limited") {
		t.Error("failure detail must not appear in the report")
	}
}

func TestMarkdownExtendedOmitsAgentSection(t *testing.T) {
	md := Markdown(sampleResult(models.LangEnglish, models.VerbosityExtended))

	if !strings.Contains(md, "# KRYONIS Strategic Brief") {
		t.Error("extended report should use the brief title")
	}
	if !strings.Contains(md, "## TOPIC") {
		t.Error("extended report should use TOPIC heading")
	}
	if strings.Contains(md, "AGENT RESPONSES") || strings.Contains(md, "Architect") {
		t.Error("extended report must not carry the agent section")
	}
}

func TestMarkdownLocalizedTitles(t *testing.T) {
	ru := Markdown(sampleResult(models.LangRussian, models.VerbosityStandard))
	if !strings.Contains(ru, "Аналитический отчёт KRYONIS") || !strings.Contains(ru, "СИНТЕЗ ДИРИЖЁРА") {
		t.Error("Russian report missing localized titles")
	}

	et := Markdown(sampleResult(models.LangEstonian, models.VerbosityExtended))
	if !strings.Contains(et, "KRYONIS Strateegiline ülevaade") {
		t.Error("Estonian brief missing localized title")
	}
}

func TestMarkdownUnknownAgentKeepsName(t *testing.T) {
	res := sampleResult(models.LangEnglish, models.VerbosityStandard)
	res.Agents = []models.AgentResult{{Agent: "Visitor", Role: "guest", Response: "hello"}}

	md := Markdown(res)
	if !strings.Contains(md, "### Visitor (Visitor)") {
		t.Error("agent without a designation should fall back to its name")
	}
}

func TestMarkdownTruncatesLongFields(t *testing.T) {
	res := sampleResult(models.LangEnglish, models.VerbosityStandard)
	res.Question = strings.Repeat("q", maxQuestionChars+100)
	res.Agents = []models.AgentResult{{Agent: "Architect", Response: strings.Repeat("r", maxResponseChars+100)}}

	md := Markdown(res)
	if strings.Contains(md, strings.Repeat("q", maxQuestionChars+1)) {
		t.Error("question not truncated")
	}
	if strings.Contains(md, strings.Repeat("r", maxResponseChars+1)) {
		t.Error("agent response not truncated")
	}
}

func TestFilename(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	std := Filename(models.VerbosityStandard, ts)
	if !strings.HasPrefix(std, "KRYONIS_Analysis_") || !strings.HasSuffix(std, ".md") {
		t.Errorf("standard filename = %q", std)
	}

	ext := Filename(models.VerbosityExtended, ts)
	if !strings.HasPrefix(ext, "KRYONIS_Strategic_Brief_") {
		t.Errorf("extended filename = %q", ext)
	}
}
