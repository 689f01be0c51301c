package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kryonis/lazysusan/pkg/models"
)

func TestDefaultPanel(t *testing.T) {
	r := Default()

	if r.Count() != 7 {
		t.Fatalf("expected 7 agents, got %d", r.Count())
	}

	wantOrder := []string{"architect", "redteam", "synth", "facts", "style", "futurist", "devil"}
	for i, a := range r.Agents() {
		if a.ID != wantOrder[i] {
			t.Errorf("agent %d: expected %q, got %q", i, wantOrder[i], a.ID)
		}
	}
}

func TestDefaultPanelValidates(t *testing.T) {
	r := Default()
	if err := r.validate(); err != nil {
		t.Fatalf("built-in panel failed validation: %v", err)
	}
}

func TestAgentsReturnsCopy(t *testing.T) {
	r := Default()

	agents := r.Agents()
	agents[0].Name = "mutated"

	if r.Agents()[0].Name == "mutated" {
		t.Error("mutating the returned slice leaked into the roster")
	}
}

func TestRoleFallbackForEveryAgent(t *testing.T) {
	for _, a := range Default().Agents() {
		if got := a.RoleFor(models.Language("de")); got != a.Roles[models.LangEnglish] {
			t.Errorf("agent %s: unsupported language did not fall back to English", a.ID)
		}
	}
}

func TestFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	content := `
- id: architect
  name: Architect
  roles:
    en: Structures the problem
    ru: Структурирует проблему
  model: anthropic/claude-opus-4
- id: redteam
  name: Red Team
  roles:
    en: Finds weaknesses
  model: openai/gpt-4o
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write roster: %v", err)
	}

	r, err := FromYAML(path)
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}
	if r.Count() != 2 {
		t.Fatalf("expected 2 agents, got %d", r.Count())
	}
	if r.Agents()[1].Name != "Red Team" {
		t.Errorf("agent 1 = %q", r.Agents()[1].Name)
	}
}

func TestFromYAMLRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty panel", `[]`},
		{"missing model", "- id: a\n  name: A\n  roles:\n    en: role\n"},
		{"missing english role", "- id: a\n  name: A\n  model: m\n  roles:\n    ru: роль\n"},
		{"duplicate id", "- id: a\n  name: A\n  model: m\n  roles: {en: r}\n- id: a\n  name: B\n  model: m\n  roles: {en: r}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "roster.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("write roster: %v", err)
			}
			if _, err := FromYAML(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestFromYAMLMissingFile(t *testing.T) {
	if _, err := FromYAML(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
