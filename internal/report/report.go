// Package report renders a completed council session as a Markdown
// document for export. Titles are localized; the extended mode
// produces a strategic brief without the per-agent section.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/kryonis/lazysusan/internal/extract"
	"github.com/kryonis/lazysusan/pkg/models"
)

const (
	maxQuestionChars = 500
	maxResponseChars = 1200
)

// titles holds the localized section headings of one report.
type titles struct {
	report    string
	question  string
	synthesis string
	agents    string
	generated string
}

var langTitles = map[models.Language]map[models.Verbosity]titles{
	models.LangEnglish: {
		models.VerbosityStandard: {
			report:    "KRYONIS Analysis Report",
			question:  "QUESTION",
			synthesis: "CONDUCTOR'S SYNTHESIS",
			agents:    "AGENT RESPONSES",
			generated: "Generated by KRYONIS Lazy Susan PRO",
		},
		models.VerbosityExtended: {
			report:    "KRYONIS Strategic Brief",
			question:  "TOPIC",
			synthesis: "STRATEGIC BRIEF",
			agents:    "AGENT RESPONSES",
			generated: "Generated by KRYONIS Lazy Susan PRO",
		},
	},
	models.LangRussian: {
		models.VerbosityStandard: {
			report:    "Аналитический отчёт KRYONIS",
			question:  "ВОПРОС",
			synthesis: "СИНТЕЗ ДИРИЖЁРА",
			agents:    "ОТВЕТЫ АГЕНТОВ",
			generated: "Сгенерировано KRYONIS Lazy Susan PRO",
		},
		models.VerbosityExtended: {
			report:    "Стратегический обзор KRYONIS",
			question:  "ТЕМА",
			synthesis: "СТРАТЕГИЧЕСКИЙ ОБЗОР",
			agents:    "ОТВЕТЫ АГЕНТОВ",
			generated: "Сгенерировано KRYONIS Lazy Susan PRO",
		},
	},
	models.LangEstonian: {
		models.VerbosityStandard: {
			report:    "KRYONIS Analüüsiraport",
			question:  "KÜSIMUS",
			synthesis: "DIRIGENDI SÜNTEES",
			agents:    "AGENTIDE VASTUSED",
			generated: "Genereeritud KRYONIS Lazy Susan PRO",
		},
		models.VerbosityExtended: {
			report:    "KRYONIS Strateegiline ülevaade",
			question:  "TEEMA",
			synthesis: "STRATEEGILINE ÜLEVAADE",
			agents:    "AGENTIDE VASTUSED",
			generated: "Genereeritud KRYONIS Lazy Susan PRO",
		},
	},
}

// agentCodes maps agent names to their council designations.
var agentCodes = map[string]string{
	"Architect":        "KRYONIS-Α",
	"Red Team":         "KRYONIS-Β",
	"Synthesizer":      "KRYONIS-Γ",
	"Facts":            "KRYONIS-Δ",
	"Style":            "KRYONIS-Ε",
	"Futurist":         "KRYONIS-Ζ",
	"Devil's Advocate": "KRYONIS-Η",
}

// Filename returns the export filename for a session.
func Filename(verbosity models.Verbosity, ts time.Time) string {
	base := "KRYONIS_Analysis"
	if verbosity == models.VerbosityExtended {
		base = "KRYONIS_Strategic_Brief"
	}
	return fmt.Sprintf("%s_%d.md", base, ts.UnixMilli())
}

// Markdown renders the session as a Markdown document. Failed agents
// are omitted; the extended report carries only the brief itself.
func Markdown(res *models.Result) string {
	t := titlesFor(res.Lang, res.Verbosity)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.report)
	fmt.Fprintf(&b, "_%s_\n\n", res.Timestamp.UTC().Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "## %s\n\n%s\n\n", t.question, extract.Truncate(res.Question, maxQuestionChars))
	fmt.Fprintf(&b, "## %s\n\n%s\n", t.synthesis, res.Synthesis)

	if res.Verbosity != models.VerbosityExtended {
		fmt.Fprintf(&b, "\n## %s\n", t.agents)
		for _, agent := range res.Agents {
			if agent.Failed() {
				continue
			}
			code, ok := agentCodes[agent.Agent]
			if !ok {
				code = agent.Agent
			}
			fmt.Fprintf(&b, "\n### %s (%s)\n\n", agent.Agent, code)
			if agent.Role != "" {
				fmt.Fprintf(&b, "_%s_\n\n", agent.Role)
			}
			fmt.Fprintf(&b, "%s\n", extract.Truncate(agent.Response, maxResponseChars))
		}
	}

	fmt.Fprintf(&b, "\n---\n\n%s\n", t.generated)
	return b.String()
}

func titlesFor(lang models.Language, verbosity models.Verbosity) titles {
	byVerbosity, ok := langTitles[lang]
	if !ok {
		byVerbosity = langTitles[models.LangEnglish]
	}
	t, ok := byVerbosity[verbosity]
	if !ok {
		t = byVerbosity[models.VerbosityStandard]
	}
	return t
}
