package doctor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewf(t *testing.T) {
	d := Newf("Your Xcode (%s) is too outdated.", "14.1")

	assert.Equal(t, "Your Xcode (14.1) is too outdated.", d.Message)
	assert.Empty(t, d.Files)
}

func TestListDiagnostic(t *testing.T) {
	files := []string{
		"/usr/local/lib/libintl.dylib",
		"/usr/local/include/libintl.h",
	}

	d := ListDiagnostic("Consider removing:\n", files)

	assert.Equal(t, "Consider removing:"+
		"\n    /usr/local/lib/libintl.dylib"+
		"\n    /usr/local/include/libintl.h", d.Message)
	assert.Equal(t, files, d.Files)
}

func TestListDiagnosticNoFiles(t *testing.T) {
	d := ListDiagnostic("Nothing else to say.\n\n", nil)

	assert.Equal(t, "Nothing else to say.", d.Message)
	assert.Empty(t, d.Files)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "fatal", Fatal.String())
}

func TestSeverityMarshalJSON(t *testing.T) {
	out, err := json.Marshal(Fatal)
	require.NoError(t, err)
	assert.Equal(t, `"fatal"`, string(out))

	out, err = json.Marshal(Warning)
	require.NoError(t, err)
	assert.Equal(t, `"warning"`, string(out))
}

func TestFindingJSONShape(t *testing.T) {
	out, err := json.Marshal(Finding{
		Check:    "check_for_gettext",
		Severity: Warning,
		Message:  "gettext files detected",
		Files:    []string{"/usr/local/lib/libintl.dylib"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"check": "check_for_gettext",
		"severity": "warning",
		"message": "gettext files detected",
		"files": ["/usr/local/lib/libintl.dylib"]
	}`, string(out))

	out, err = json.Marshal(Finding{
		Check:    "check_xcode_license_approved",
		Severity: Fatal,
		Message:  "license not accepted",
	})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "files")
}
