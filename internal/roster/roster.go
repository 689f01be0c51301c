// Package roster defines the fixed panel of analysis agents.
// The panel is assembled once at process start and never mutated by a
// request, so it is safely shared across concurrent sessions.
package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kryonis/lazysusan/pkg/models"
)

// Roster is the ordered, immutable sequence of agent definitions.
type Roster struct {
	agents []models.AgentDefinition
}

// Default returns the built-in seven-agent panel.
func Default() *Roster {
	return &Roster{agents: builtinAgents()}
}

// FromYAML loads a panel override from a YAML file. The file holds a
// list of agent definitions in panel order.
func FromYAML(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}

	var agents []models.AgentDefinition
	if err := yaml.Unmarshal(data, &agents); err != nil {
		return nil, fmt.Errorf("parse roster file: %w", err)
	}

	r := &Roster{agents: agents}
	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("roster %s: %w", path, err)
	}
	return r, nil
}

// Agents returns a copy of the panel in registry order.
func (r *Roster) Agents() []models.AgentDefinition {
	out := make([]models.AgentDefinition, len(r.agents))
	copy(out, r.agents)
	return out
}

// Count returns the number of agents on the panel.
func (r *Roster) Count() int {
	return len(r.agents)
}

// validate checks that every definition can actually be invoked.
func (r *Roster) validate() error {
	if len(r.agents) == 0 {
		return fmt.Errorf("panel is empty")
	}
	seen := make(map[string]bool, len(r.agents))
	for i, a := range r.agents {
		if a.ID == "" || a.Name == "" || a.Model == "" {
			return fmt.Errorf("agent %d: id, name and model are required", i)
		}
		if a.Roles[models.LangEnglish] == "" {
			return fmt.Errorf("agent %s: English role is required as fallback", a.ID)
		}
		if seen[a.ID] {
			return fmt.Errorf("agent %s: duplicate id", a.ID)
		}
		seen[a.ID] = true
	}
	return nil
}

// builtinAgents returns the stock KRYONIS panel.
func builtinAgents() []models.AgentDefinition {
	return []models.AgentDefinition{
		{
			ID:   "architect",
			Name: "Architect",
			Roles: map[models.Language]string{
				models.LangEnglish:  "Structures the problem, sees the system, identifies key leverage points",
				models.LangRussian:  "Структурирует проблему, видит систему, определяет ключевые точки воздействия",
				models.LangEstonian: "Struktureerib probleemi, näeb süsteemi, tuvastab võtmekohad",
			},
			Model: "anthropic/claude-opus-4",
		},
		{
			ID:   "redteam",
			Name: "Red Team",
			Roles: map[models.Language]string{
				models.LangEnglish:  "Finds weaknesses, attacks assumptions, stress-tests logic",
				models.LangRussian:  "Ищет слабости, атакует допущения, проверяет логику на прочность",
				models.LangEstonian: "Otsib nõrkusi, ründab eeldusi, testib loogikat",
			},
			Model: "openai/gpt-4o",
		},
		{
			ID:   "synth",
			Name: "Synthesizer",
			Roles: map[models.Language]string{
				models.LangEnglish:  "Connects different views, finds deep patterns, builds bridges",
				models.LangRussian:  "Соединяет разные взгляды, находит глубинные паттерны, строит мосты",
				models.LangEstonian: "Ühendab erinevad vaated, leiab sügavad mustrid, ehitab sildu",
			},
			Model: "anthropic/claude-opus-4",
		},
		{
			ID:   "facts",
			Name: "Facts",
			Roles: map[models.Language]string{
				models.LangEnglish:  "Checks facts in real-time, searches latest sources, verifies claims",
				models.LangRussian:  "Проверяет факты в реальном времени, ищет последние источники, верифицирует утверждения",
				models.LangEstonian: "Kontrollib fakte reaalajas, otsib värskeid allikaid, verifitseerib väiteid",
			},
			Model: "perplexity/sonar-pro",
		},
		{
			ID:   "style",
			Name: "Style",
			Roles: map[models.Language]string{
				models.LangEnglish:  "Polishes language, ensures clarity, makes compelling",
				models.LangRussian:  "Шлифует язык, обеспечивает ясность, делает убедительным",
				models.LangEstonian: "Viimistleb keele, tagab selguse, teeb veenvaks",
			},
			Model: "anthropic/claude-opus-4",
		},
		{
			ID:   "futurist",
			Name: "Futurist",
			Roles: map[models.Language]string{
				models.LangEnglish:  "Long-term trends, 10-100 year horizon, civilizational perspective",
				models.LangRussian:  "Долгосрочные тренды, горизонт 10-100 лет, цивилизационная перспектива",
				models.LangEstonian: "Pikaajalised trendid, 10-100 aasta horisont, tsivilisatsiooniline perspektiiv",
			},
			Model: "anthropic/claude-opus-4",
		},
		{
			ID:   "devil",
			Name: "Devil's Advocate",
			Roles: map[models.Language]string{
				models.LangEnglish:  "Argues opposite position, challenges consensus, tests robustness",
				models.LangRussian:  "Аргументирует противоположную позицию, оспаривает консенсус, проверяет устойчивость",
				models.LangEstonian: "Argumenteerib vastupidist, vaidlustab konsensust, testib vastupidavust",
			},
			Model: "openai/gpt-4o",
		},
	}
}
