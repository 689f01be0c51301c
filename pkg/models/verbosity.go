package models

// Verbosity selects how much the final synthesis elaborates.
type Verbosity string

const (
	// VerbosityStandard produces a compact, decisive synthesis.
	VerbosityStandard Verbosity = "standard"
	// VerbosityExtended produces a long-form, sectioned strategic brief.
	VerbosityExtended Verbosity = "extended"
)

// Valid returns true if the verbosity is a known value.
func (v Verbosity) Valid() bool {
	switch v {
	case VerbosityStandard, VerbosityExtended:
		return true
	default:
		return false
	}
}

// VerbosityFromBrief converts the wire-level briefMode flag to a Verbosity.
func VerbosityFromBrief(brief bool) Verbosity {
	if brief {
		return VerbosityExtended
	}
	return VerbosityStandard
}
