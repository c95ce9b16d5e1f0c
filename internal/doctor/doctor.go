// Package doctor implements malt's diagnostic checks: independent probes
// of the host configuration that each report at most one finding. Checks
// are grouped into severity tiers; the fatal tier gates building packages
// from source and stops at its first finding, while advisory tiers run to
// completion and aggregate everything they find.
//
// A check that finds nothing, cannot apply, or cannot answer returns nil.
// Probe failures never surface as errors from this package; the only
// errors are registry construction errors, which indicate a misconfigured
// tier and abort before any check runs.
package doctor

import (
	"fmt"
	"strings"
)

// Diagnostic is one finding: fully formatted advisory text plus, for
// file-list findings, the paths behind it. Checks return nil when they
// have nothing to report; a non-nil Diagnostic always carries a message.
type Diagnostic struct {
	// Message is the advisory shown to the user.
	Message string

	// Files holds the accumulated paths behind a file-list advisory, in
	// accumulation order. Empty for plain advisories.
	Files []string
}

// Newf formats a plain advisory.
func Newf(format string, args ...any) *Diagnostic {
	return &Diagnostic{Message: fmt.Sprintf(format, args...)}
}

// ListDiagnostic renders a preamble plus one indented line per path,
// preserving accumulation order, and keeps the paths as structured data.
func ListDiagnostic(preamble string, files []string) *Diagnostic {
	var b strings.Builder
	b.WriteString(strings.TrimRight(preamble, "\n"))
	for _, f := range files {
		b.WriteString("\n    ")
		b.WriteString(f)
	}
	return &Diagnostic{Message: b.String(), Files: files}
}

// Severity ranks how a finding affects the host.
type Severity int

const (
	// Warning findings are advisories; malt keeps working.
	Warning Severity = iota

	// Fatal findings block building packages from source.
	Fatal
)

// String returns the severity's wire name.
func (s Severity) String() string {
	if s == Fatal {
		return "fatal"
	}
	return "warning"
}

// MarshalJSON encodes the severity as its wire name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// RunFunc probes the host for one condition. It returns nil when the
// condition is absent, not applicable, or could not be determined.
type RunFunc func() *Diagnostic

// Check pairs a stable name with its probe. Names are snake_case with a
// check_ prefix and double as command-line selectors.
type Check struct {
	// Name uniquely identifies the check.
	Name string

	// Run probes the host. Never nil for a registered check.
	Run RunFunc
}
