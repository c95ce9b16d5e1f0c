// Package platform knows which macOS releases malt supports and exposes
// the host facts checks care about: the running OS version, whether it is
// a pre-release or past end-of-support, and the CI / developer-mode
// environment flags that alter reporting policy.
package platform

import (
	"fmt"
	"os"
	"strings"

	"github.com/maltbrew/malt/internal/version"
)

// Release describes one macOS release line and the toolchain versions
// associated with it.
type Release struct {
	// Version is the release's major version ("26"), or "10.x" for the
	// pre-Big Sur lines.
	Version version.Version

	// Name is Apple's marketing name for the release.
	Name string

	// EndOfLife marks releases Apple no longer patches. malt still runs
	// on them but does not support them.
	EndOfLife bool

	// LatestXcode is the newest Xcode known to run on this release.
	LatestXcode version.Version

	// MinimumXcode is the oldest Xcode able to build packages on this
	// release.
	MinimumXcode version.Version

	// MinimumCLT is the oldest Command Line Tools able to build packages
	// on this release.
	MinimumCLT version.Version
}

// releases lists every macOS line malt knows about, newest first. A host
// version newer than the first entry is treated as a pre-release.
var releases = []Release{
	{Version: "26", Name: "Tahoe", LatestXcode: "26.1", MinimumXcode: "26.0", MinimumCLT: "26.0"},
	{Version: "15", Name: "Sequoia", LatestXcode: "16.4", MinimumXcode: "16.0", MinimumCLT: "16.0"},
	{Version: "14", Name: "Sonoma", LatestXcode: "16.2", MinimumXcode: "15.0", MinimumCLT: "15.0"},
	{Version: "13", Name: "Ventura", EndOfLife: true, LatestXcode: "15.2", MinimumXcode: "14.1", MinimumCLT: "14.0"},
	{Version: "12", Name: "Monterey", EndOfLife: true, LatestXcode: "14.2", MinimumXcode: "13.1", MinimumCLT: "13.0"},
	{Version: "11", Name: "Big Sur", EndOfLife: true, LatestXcode: "13.2.1", MinimumXcode: "12.0", MinimumCLT: "12.0"},
	{Version: "10.15", Name: "Catalina", EndOfLife: true, LatestXcode: "12.4", MinimumXcode: "11.0", MinimumCLT: "11.0"},
}

// FindRelease returns the release line matching an OS version, or nil when
// the version is unknown (future betas, ancient releases).
func FindRelease(osVersion version.Version) *Release {
	if osVersion.IsZero() {
		return nil
	}
	major := osVersion.Major()
	for i := range releases {
		r := &releases[i]
		if major == "10" {
			// 10.x lines differ by minor version, so match on the
			// first two components.
			if strings.HasPrefix(osVersion.String(), r.Version.String()) {
				return r
			}
			continue
		}
		if r.Version.Major() == major {
			return r
		}
	}
	return nil
}

// NewestSupported returns the newest release malt supports.
func NewestSupported() Release {
	return releases[0]
}

// Facts bundles the host attributes diagnostic checks read. Environment
// access goes through the injected getenv so tests can fake it.
type Facts struct {
	osVersion version.Version
	release   *Release
	getenv    func(string) string
}

// NewFacts builds host facts for the given OS version. A nil getenv
// defaults to os.Getenv.
func NewFacts(osVersion version.Version, getenv func(string) string) *Facts {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &Facts{
		osVersion: osVersion,
		release:   FindRelease(osVersion),
		getenv:    getenv,
	}
}

// OSVersion returns the host's OS version, or version.Zero when detection
// failed.
func (f *Facts) OSVersion() version.Version {
	return f.osVersion
}

// PrettyName renders the release for advisory messages, e.g.
// "macOS Tahoe (26.0)" or "macOS 27.1" when the release is unknown.
func (f *Facts) PrettyName() string {
	if f.osVersion.IsZero() {
		return "macOS (unknown version)"
	}
	if f.release == nil {
		return fmt.Sprintf("macOS %s", f.osVersion)
	}
	return fmt.Sprintf("macOS %s (%s)", f.release.Name, f.osVersion)
}

// PrereleaseOS reports whether the host runs a version newer than the
// newest release malt knows about.
func (f *Facts) PrereleaseOS() bool {
	if f.osVersion.IsZero() {
		return false
	}
	return f.release == nil && version.Compare(f.osVersion, releases[0].Version) > 0
}

// OutOfSupportOS reports whether the host runs a release past its end of
// support.
func (f *Facts) OutOfSupportOS() bool {
	return f.release != nil && f.release.EndOfLife
}

// CI reports whether the CI environment flag is set. Several version
// checks suppress their findings on CI hosts, whose images the user does
// not control.
func (f *Facts) CI() bool {
	return f.getenv("CI") != ""
}

// Developer reports whether the user opted into developer mode, which
// silences the unsupported-OS advisory.
func (f *Facts) Developer() bool {
	return f.getenv("MALT_DEVELOPER") != ""
}
