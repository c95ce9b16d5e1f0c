package doctor

import "fmt"

// Tier names. Tier membership is fixed at build time; the registry only
// validates it.
const (
	// TierFatalBuildFromSource gates building packages from source. Its
	// first finding aborts the gated operation.
	TierFatalBuildFromSource = "fatal_build_from_source"

	// TierSupportedConfiguration covers hosts malt keeps working on but
	// does not support.
	TierSupportedConfiguration = "supported_configuration"

	// TierBuildFromSource covers conditions that degrade source builds
	// without blocking them.
	TierBuildFromSource = "build_from_source"
)

// tierNames lists each tier's checks in run order. Order within the fatal
// tier is load-bearing: later checks assume the conditions earlier ones
// probe for were absent.
var tierNames = map[string][]string{
	TierFatalBuildFromSource: {
		"check_xcode_license_approved",
		"check_xcode_minimum_version",
		"check_clt_minimum_version",
		"check_if_xcode_needs_clt",
	},
	TierSupportedConfiguration: {
		"check_for_unsupported_macos",
	},
	TierBuildFromSource: {
		"check_for_installed_developer_tools",
		"check_xcode_up_to_date",
		"check_clt_up_to_date",
	},
}

// TierSeverity returns the severity attached to findings from a tier.
func TierSeverity(tier string) Severity {
	if tier == TierFatalBuildFromSource {
		return Fatal
	}
	return Warning
}

// Registry holds the validated check catalog and the tier lists resolved
// against it. Construction fails on duplicate names or a tier referencing
// an unregistered check, so misconfiguration never reaches a run.
type Registry struct {
	catalog []Check
	byName  map[string]Check
	tiers   map[string][]Check
	fatal   map[string]bool
}

// NewRegistry validates a catalog and resolves the tier lists against it.
func NewRegistry(catalog []Check) (*Registry, error) {
	byName := make(map[string]Check, len(catalog))
	for _, chk := range catalog {
		if chk.Name == "" {
			return nil, fmt.Errorf("check registered without a name")
		}
		if chk.Run == nil {
			return nil, fmt.Errorf("check %q registered without a run function", chk.Name)
		}
		if _, exists := byName[chk.Name]; exists {
			return nil, fmt.Errorf("check %q already registered", chk.Name)
		}
		byName[chk.Name] = chk
	}

	tiers := make(map[string][]Check, len(tierNames))
	for tier, names := range tierNames {
		resolved := make([]Check, 0, len(names))
		for _, name := range names {
			chk, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("tier %s references unregistered check %q", tier, name)
			}
			resolved = append(resolved, chk)
		}
		tiers[tier] = resolved
	}

	fatal := make(map[string]bool, len(tierNames[TierFatalBuildFromSource]))
	for _, name := range tierNames[TierFatalBuildFromSource] {
		fatal[name] = true
	}

	return &Registry{
		catalog: append([]Check(nil), catalog...),
		byName:  byName,
		tiers:   tiers,
		fatal:   fatal,
	}, nil
}

// All returns the full catalog in registration order.
func (r *Registry) All() []Check {
	return append([]Check(nil), r.catalog...)
}

// Names returns every registered check name in catalog order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.catalog))
	for i, chk := range r.catalog {
		names[i] = chk.Name
	}
	return names
}

// Lookup returns a registered check by name.
func (r *Registry) Lookup(name string) (Check, bool) {
	chk, ok := r.byName[name]
	return chk, ok
}

// Tier returns a tier's checks in run order.
func (r *Registry) Tier(tier string) ([]Check, error) {
	checks, ok := r.tiers[tier]
	if !ok {
		return nil, fmt.Errorf("unknown tier %q", tier)
	}
	return append([]Check(nil), checks...), nil
}

// FatalChecks returns the fatal_build_from_source tier in run order.
func (r *Registry) FatalChecks() []Check {
	return append([]Check(nil), r.tiers[TierFatalBuildFromSource]...)
}

// SupportedConfigurationChecks returns the supported_configuration tier in
// run order.
func (r *Registry) SupportedConfigurationChecks() []Check {
	return append([]Check(nil), r.tiers[TierSupportedConfiguration]...)
}

// BuildFromSourceChecks returns the build_from_source tier in run order.
func (r *Registry) BuildFromSourceChecks() []Check {
	return append([]Check(nil), r.tiers[TierBuildFromSource]...)
}

// IsFatal reports whether a check belongs to the fatal tier.
func (r *Registry) IsFatal(name string) bool {
	return r.fatal[name]
}
