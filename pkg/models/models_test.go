package models

import "testing"

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		code string
		want Language
	}{
		{"en", LangEnglish},
		{"ru", LangRussian},
		{"et", LangEstonian},
		{"", LangEnglish},
		{"de", LangEnglish},
		{"EN", LangEnglish},
	}

	for _, tt := range tests {
		if got := ParseLanguage(tt.code); got != tt.want {
			t.Errorf("ParseLanguage(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestVerbosityFromBrief(t *testing.T) {
	if got := VerbosityFromBrief(false); got != VerbosityStandard {
		t.Errorf("expected standard, got %q", got)
	}
	if got := VerbosityFromBrief(true); got != VerbosityExtended {
		t.Errorf("expected extended, got %q", got)
	}
}

func TestRoleForFallback(t *testing.T) {
	agent := AgentDefinition{
		ID:   "redteam",
		Name: "Red Team",
		Roles: map[Language]string{
			LangEnglish: "Finds weaknesses",
			LangRussian: "Ищет слабости",
		},
	}

	if got := agent.RoleFor(LangRussian); got != "Ищет слабости" {
		t.Errorf("expected localized role, got %q", got)
	}
	// Estonian translation is missing and must degrade silently.
	if got := agent.RoleFor(LangEstonian); got != "Finds weaknesses" {
		t.Errorf("expected English fallback, got %q", got)
	}
}

func TestAgentResultFailed(t *testing.T) {
	ok := AgentResult{Agent: "Architect", Response: "analysis"}
	if ok.Failed() {
		t.Error("success variant reported as failed")
	}

	bad := AgentResult{Agent: "Facts", Err: "rate limited"}
	if !bad.Failed() {
		t.Error("failure variant not reported as failed")
	}
}

func TestResultSuccesses(t *testing.T) {
	r := &Result{
		Agents: []AgentResult{
			{Agent: "Architect", Response: "a"},
			{Agent: "Facts", Err: "rate limited"},
			{Agent: "Futurist", Response: "b"},
		},
	}

	succ := r.Successes()
	if len(succ) != 2 {
		t.Fatalf("expected 2 successes, got %d", len(succ))
	}
	if succ[0].Agent != "Architect" || succ[1].Agent != "Futurist" {
		t.Errorf("successes out of registry order: %v", succ)
	}
}
