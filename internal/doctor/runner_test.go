package doctor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkRecorder tracks which checks ran and in what order, returning the
// scripted diagnostic for each name.
type checkRecorder struct {
	calls []string
	diags map[string]*Diagnostic
}

func (r *checkRecorder) run(name string) *Diagnostic {
	r.calls = append(r.calls, name)
	return r.diags[name]
}

func recordingRunner(t *testing.T, diags map[string]*Diagnostic) (*Runner, *checkRecorder) {
	t.Helper()
	rec := &checkRecorder{diags: diags}
	reg, err := NewRegistry(stubCatalog(rec.run))
	require.NoError(t, err)
	return NewRunner(reg), rec
}

func TestRunFatalStopsAtFirstFinding(t *testing.T) {
	runner, rec := recordingRunner(t, map[string]*Diagnostic{
		"check_xcode_minimum_version": Newf("Your Xcode (14.1) is too outdated."),
		"check_clt_minimum_version":   Newf("should never surface"),
	})

	finding := runner.RunFatal()

	require.NotNil(t, finding)
	assert.Equal(t, "check_xcode_minimum_version", finding.Check)
	assert.Equal(t, Fatal, finding.Severity)
	assert.Equal(t, "Your Xcode (14.1) is too outdated.", finding.Message)

	// Checks after the first finding must not run.
	assert.Equal(t, []string{
		"check_xcode_license_approved",
		"check_xcode_minimum_version",
	}, rec.calls)
}

func TestRunFatalHealthyHostRunsWholeTier(t *testing.T) {
	runner, rec := recordingRunner(t, nil)

	assert.Nil(t, runner.RunFatal())
	assert.Equal(t, []string{
		"check_xcode_license_approved",
		"check_xcode_minimum_version",
		"check_clt_minimum_version",
		"check_if_xcode_needs_clt",
	}, rec.calls)
}

func TestRunTierAggregatesInOrder(t *testing.T) {
	runner, rec := recordingRunner(t, map[string]*Diagnostic{
		"check_for_installed_developer_tools": Newf("No developer tools installed."),
		"check_clt_up_to_date":                Newf("A newer Command Line Tools release is available."),
	})

	report, err := runner.RunTier(TierBuildFromSource)
	require.NoError(t, err)

	require.Len(t, report.Findings, 2)
	assert.Equal(t, "check_for_installed_developer_tools", report.Findings[0].Check)
	assert.Equal(t, "check_clt_up_to_date", report.Findings[1].Check)
	for _, f := range report.Findings {
		assert.Equal(t, Warning, f.Severity)
	}
	assert.False(t, report.OK())
	assert.False(t, report.HasFatal())

	// The quiet check in between still ran.
	assert.Equal(t, []string{
		"check_for_installed_developer_tools",
		"check_xcode_up_to_date",
		"check_clt_up_to_date",
	}, rec.calls)
}

func TestRunTierNeverShortCircuits(t *testing.T) {
	runner, rec := recordingRunner(t, map[string]*Diagnostic{
		"check_xcode_license_approved": Newf("license not accepted"),
		"check_if_xcode_needs_clt":     Newf("CLT missing"),
	})

	report, err := runner.RunTier(TierFatalBuildFromSource)
	require.NoError(t, err)

	require.Len(t, report.Findings, 2)
	assert.Equal(t, Fatal, report.Findings[0].Severity)
	assert.Equal(t, Fatal, report.Findings[1].Severity)
	assert.True(t, report.HasFatal())
	assert.Len(t, rec.calls, 4)
}

func TestRunTierUnknownTier(t *testing.T) {
	runner, rec := recordingRunner(t, nil)

	_, err := runner.RunTier("bogus_tier")
	require.Error(t, err)
	assert.Empty(t, rec.calls)
}

func TestRunAllSweepsCatalogInOrder(t *testing.T) {
	runner, rec := recordingRunner(t, map[string]*Diagnostic{
		"check_clt_minimum_version": Newf("CLT too old"),
		"check_for_gettext": ListDiagnostic("gettext files detected", []string{
			"/usr/local/lib/libintl.dylib",
		}),
	})

	report := runner.RunAll()

	require.Len(t, report.Findings, 2)
	assert.Equal(t, "check_clt_minimum_version", report.Findings[0].Check)
	assert.Equal(t, Fatal, report.Findings[0].Severity)
	assert.Equal(t, "check_for_gettext", report.Findings[1].Check)
	assert.Equal(t, Warning, report.Findings[1].Severity)
	assert.Equal(t, []string{"/usr/local/lib/libintl.dylib"}, report.Findings[1].Files)
	assert.True(t, report.HasFatal())

	// Every registered check ran, in catalog order.
	assert.Len(t, rec.calls, 10)
	assert.Equal(t, "check_xcode_license_approved", rec.calls[0])
	assert.Equal(t, "check_for_gettext", rec.calls[9])
}

func TestRunNamedRunsInGivenOrder(t *testing.T) {
	runner, rec := recordingRunner(t, map[string]*Diagnostic{
		"check_user_path": Newf("malt bin is not in your PATH"),
	})

	report, err := runner.RunNamed("check_for_gettext", "check_user_path")
	require.NoError(t, err)

	require.Len(t, report.Findings, 1)
	assert.Equal(t, "check_user_path", report.Findings[0].Check)
	assert.Equal(t, Warning, report.Findings[0].Severity)
	assert.Equal(t, []string{"check_for_gettext", "check_user_path"}, rec.calls)
}

func TestRunNamedUnknownNameRunsNothing(t *testing.T) {
	runner, rec := recordingRunner(t, nil)

	_, err := runner.RunNamed("check_user_path", "check_nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown check "check_nonexistent"`)
	assert.Empty(t, rec.calls)
}

func TestReportOK(t *testing.T) {
	report := &Report{}
	assert.True(t, report.OK())
	assert.False(t, report.HasFatal())

	report.Findings = append(report.Findings, Finding{
		Check:    "check_user_path",
		Severity: Warning,
		Message:  "malt bin is not in your PATH",
	})
	assert.False(t, report.OK())
	assert.False(t, report.HasFatal())

	report.Findings = append(report.Findings, Finding{
		Check:    "check_xcode_license_approved",
		Severity: Fatal,
		Message:  "license not accepted",
	})
	assert.True(t, report.HasFatal())
}
