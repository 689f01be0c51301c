package models

import "time"

// Result is the terminal artifact of one orchestration session.
// It is returned to the caller and optionally handed to the report
// writer; it has no further lifecycle.
type Result struct {
	// ID is the unique session identifier.
	ID string `json:"id"`
	// Question is the original question text, without any attached document.
	Question string `json:"question"`
	// Lang is the language the session ran in.
	Lang Language `json:"lang"`
	// Verbosity is the synthesis mode the session ran in.
	Verbosity Verbosity `json:"verbosity"`
	// Timestamp is when the session completed.
	Timestamp time.Time `json:"timestamp"`
	// Agents holds one result per registered agent, in registry order.
	Agents []AgentResult `json:"agents"`
	// Synthesis is the merged analysis, or an inline failure message.
	Synthesis string `json:"synthesis"`
}

// Successes returns the successful agent results in registry order.
func (r *Result) Successes() []AgentResult {
	out := make([]AgentResult, 0, len(r.Agents))
	for _, ar := range r.Agents {
		if !ar.Failed() {
			out = append(out, ar)
		}
	}
	return out
}
