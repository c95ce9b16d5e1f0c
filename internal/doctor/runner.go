package doctor

import "fmt"

// Finding is one check's diagnostic together with its run context.
type Finding struct {
	Check    string   `json:"check"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Files    []string `json:"files,omitempty"`
}

// Report aggregates the findings of one diagnostic run, in the order the
// checks produced them.
type Report struct {
	Findings []Finding
}

// OK reports whether the run produced no findings.
func (r *Report) OK() bool {
	return len(r.Findings) == 0
}

// HasFatal reports whether any finding blocks building from source.
func (r *Report) HasFatal() bool {
	for _, f := range r.Findings {
		if f.Severity == Fatal {
			return true
		}
	}
	return false
}

// Runner evaluates checks strictly sequentially: one check at a time, in
// list order, never concurrently. There are no retries and no timeouts; a
// check that hangs is a bug in that check.
type Runner struct {
	registry *Registry
}

// NewRunner returns a runner over a validated registry.
func NewRunner(registry *Registry) *Runner {
	return &Runner{registry: registry}
}

func (r *Runner) finding(chk Check, severity Severity, d *Diagnostic) Finding {
	return Finding{
		Check:    chk.Name,
		Severity: severity,
		Message:  d.Message,
		Files:    d.Files,
	}
}

// RunFatal evaluates the fatal tier in order and stops at the first
// finding, which the caller must treat as an instruction to abort the
// gated operation. Returns nil when the host can build from source.
func (r *Runner) RunFatal() *Finding {
	for _, chk := range r.registry.FatalChecks() {
		if d := chk.Run(); d != nil {
			f := r.finding(chk, Fatal, d)
			return &f
		}
	}
	return nil
}

// RunTier evaluates every check in a tier and aggregates all findings in
// tier order. It never short-circuits, including for the fatal tier; use
// RunFatal to gate an operation.
func (r *Runner) RunTier(tier string) (*Report, error) {
	checks, err := r.registry.Tier(tier)
	if err != nil {
		return nil, err
	}
	severity := TierSeverity(tier)
	report := &Report{}
	for _, chk := range checks {
		if d := chk.Run(); d != nil {
			report.Findings = append(report.Findings, r.finding(chk, severity, d))
		}
	}
	return report, nil
}

// RunAll sweeps the whole catalog in catalog order, aggregating every
// finding. Findings from checks in the fatal tier keep their severity.
func (r *Runner) RunAll() *Report {
	report := &Report{}
	for _, chk := range r.registry.All() {
		if d := chk.Run(); d != nil {
			report.Findings = append(report.Findings, r.finding(chk, r.severityOf(chk.Name), d))
		}
	}
	return report
}

// RunNamed runs the named checks in the order given. An unknown name is an
// error before anything runs.
func (r *Runner) RunNamed(names ...string) (*Report, error) {
	checks := make([]Check, 0, len(names))
	for _, name := range names {
		chk, ok := r.registry.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown check %q", name)
		}
		checks = append(checks, chk)
	}

	report := &Report{}
	for _, chk := range checks {
		if d := chk.Run(); d != nil {
			report.Findings = append(report.Findings, r.finding(chk, r.severityOf(chk.Name), d))
		}
	}
	return report, nil
}

func (r *Runner) severityOf(name string) Severity {
	if r.registry.IsFatal(name) {
		return Fatal
	}
	return Warning
}
