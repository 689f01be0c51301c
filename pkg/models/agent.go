package models

// AgentDefinition describes one member of the fixed analysis panel.
// Definitions are immutable after process start.
type AgentDefinition struct {
	// ID is the stable short key for this agent (e.g. "redteam").
	ID string `json:"id" yaml:"id"`
	// Name is the human-readable display name.
	Name string `json:"name" yaml:"name"`
	// Roles maps a language code to the localized role description.
	// English must always be present; it is the fallback.
	Roles map[Language]string `json:"roles" yaml:"roles"`
	// Model is the identifier of the backing completion model.
	Model string `json:"model" yaml:"model"`
}

// RoleFor returns the role description localized for lang,
// falling back to English when no translation exists.
func (a AgentDefinition) RoleFor(lang Language) string {
	if role, ok := a.Roles[lang]; ok && role != "" {
		return role
	}
	return a.Roles[LangEnglish]
}

// AgentResult is the outcome of one agent invocation. It is a tagged
// union: either Response is set (success) or Err is set (failure).
// Per-agent failure is an expected outcome of fan-out, carried as data.
type AgentResult struct {
	// Agent is the display name of the agent that produced this result.
	Agent string `json:"agent"`
	// Role is the localized role the agent answered in.
	Role string `json:"role,omitempty"`
	// Model is the backing model that served the call.
	Model string `json:"model,omitempty"`
	// Response is the generated text on success.
	Response string `json:"response,omitempty"`
	// Err holds the gateway or transport error message on failure.
	Err string `json:"error,omitempty"`
}

// Failed reports whether this result is the failure variant.
func (r AgentResult) Failed() bool {
	return r.Err != ""
}
