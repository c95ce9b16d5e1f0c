package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltbrew/malt/internal/version"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

func TestFindRelease(t *testing.T) {
	tests := []struct {
		name      string
		osVersion version.Version
		wantName  string
	}{
		{name: "current major", osVersion: "26.0", wantName: "Tahoe"},
		{name: "major with patch", osVersion: "15.3.1", wantName: "Sequoia"},
		{name: "legacy 10.x line", osVersion: "10.15.7", wantName: "Catalina"},
		{name: "unknown future", osVersion: "27.0", wantName: ""},
		{name: "unknown ancient", osVersion: "10.11.6", wantName: ""},
		{name: "zero version", osVersion: version.Zero, wantName: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FindRelease(tt.osVersion)
			if tt.wantName == "" {
				assert.Nil(t, r)
				return
			}
			require.NotNil(t, r)
			assert.Equal(t, tt.wantName, r.Name)
		})
	}
}

func TestPrereleaseOS(t *testing.T) {
	assert.True(t, NewFacts("27.0", fakeEnv(nil)).PrereleaseOS())
	assert.False(t, NewFacts("26.0", fakeEnv(nil)).PrereleaseOS())
	assert.False(t, NewFacts("14.5", fakeEnv(nil)).PrereleaseOS())

	// Unknown but older than anything in the table is not a pre-release.
	assert.False(t, NewFacts("10.11.6", fakeEnv(nil)).PrereleaseOS())
	assert.False(t, NewFacts(version.Zero, fakeEnv(nil)).PrereleaseOS())
}

func TestOutOfSupportOS(t *testing.T) {
	assert.True(t, NewFacts("13.6", fakeEnv(nil)).OutOfSupportOS())
	assert.True(t, NewFacts("10.15.7", fakeEnv(nil)).OutOfSupportOS())
	assert.False(t, NewFacts("26.0", fakeEnv(nil)).OutOfSupportOS())
	assert.False(t, NewFacts("27.0", fakeEnv(nil)).OutOfSupportOS())
}

func TestPrettyName(t *testing.T) {
	assert.Equal(t, "macOS Tahoe (26.0)", NewFacts("26.0", fakeEnv(nil)).PrettyName())
	assert.Equal(t, "macOS 27.1", NewFacts("27.1", fakeEnv(nil)).PrettyName())
	assert.Equal(t, "macOS (unknown version)", NewFacts(version.Zero, fakeEnv(nil)).PrettyName())
}

func TestEnvironmentFlags(t *testing.T) {
	f := NewFacts("26.0", fakeEnv(map[string]string{"CI": "1"}))
	assert.True(t, f.CI())
	assert.False(t, f.Developer())

	f = NewFacts("26.0", fakeEnv(map[string]string{"MALT_DEVELOPER": "1"}))
	assert.False(t, f.CI())
	assert.True(t, f.Developer())

	f = NewFacts("26.0", fakeEnv(nil))
	assert.False(t, f.CI())
	assert.False(t, f.Developer())
}

func TestReleaseTableOrdering(t *testing.T) {
	// The prerelease heuristic relies on the table being newest first.
	for i := 1; i < len(releases); i++ {
		assert.True(t, version.Less(releases[i].Version, releases[i-1].Version),
			"releases[%d] (%s) should be older than releases[%d] (%s)",
			i, releases[i].Version, i-1, releases[i-1].Version)
	}
}

func TestNewestSupported(t *testing.T) {
	assert.Equal(t, "Tahoe", NewestSupported().Name)
}
