package toolchain

import (
	"bufio"
	"context"
	"strings"
	"sync"

	"github.com/maltbrew/malt/internal/platform"
	"github.com/maltbrew/malt/internal/version"
)

// xcodeWithoutCLT is the first Xcode release that stopped bundling the
// Command Line Tools.
const xcodeWithoutCLT version.Version = "4.3"

// Xcode probes the installed Xcode.app: its version via xcodebuild and the
// selected developer directory via xcode-select.
type Xcode struct {
	runner    Runner
	osVersion version.Version

	versionOnce sync.Once
	version     version.Version
	versionErr  error

	pathOnce sync.Once
	path     string
	pathErr  error
}

// NewXcode returns an Xcode probe for a host running osVersion.
func NewXcode(r Runner, osVersion version.Version) *Xcode {
	return &Xcode{runner: r, osVersion: osVersion}
}

func (x *Xcode) load(ctx context.Context) error {
	verr := x.loadVersion(ctx)
	perr := x.loadPath(ctx)
	if verr != nil {
		return verr
	}
	return perr
}

func (x *Xcode) loadVersion(ctx context.Context) error {
	x.versionOnce.Do(func() {
		out, code, err := x.runner.Run(ctx, "xcodebuild", "-version")
		if err != nil {
			x.versionErr = err
			return
		}
		if code != 0 {
			// CLT-only hosts exit non-zero with an advisory that
			// xcodebuild requires Xcode. Not an error, just absent.
			return
		}
		x.version = parseXcodebuildVersion(out)
	})
	return x.versionErr
}

// parseXcodebuildVersion extracts the version from xcodebuild -version
// output, e.g. "Xcode 16.2\nBuild version 16C5032a\n".
func parseXcodebuildVersion(out string) version.Version {
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(line, "Xcode "); ok {
			return version.New(rest)
		}
	}
	return version.Zero
}

func (x *Xcode) loadPath(ctx context.Context) error {
	x.pathOnce.Do(func() {
		out, code, err := x.runner.Run(ctx, "xcode-select", "--print-path")
		if err != nil {
			x.pathErr = err
			return
		}
		if code != 0 {
			return
		}
		x.path = strings.TrimSpace(out)
	})
	return x.pathErr
}

// Version returns the installed Xcode version, or version.Zero when Xcode
// is absent or the probe failed.
func (x *Xcode) Version() version.Version {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	_ = x.loadVersion(ctx)
	return x.version
}

// Installed reports whether a working Xcode answered the version probe.
func (x *Xcode) Installed() bool {
	return !x.Version().IsZero()
}

// SelectedPath returns the active developer directory reported by
// xcode-select, or "" when none is configured.
func (x *Xcode) SelectedPath() string {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	_ = x.loadPath(ctx)
	return x.path
}

// Prefix returns the Xcode app bundle root derived from the selected
// developer directory, or "" when the developer directory does not belong
// to an Xcode installation.
func (x *Xcode) Prefix() string {
	p := x.SelectedPath()
	if p == "" {
		return ""
	}
	if root := strings.TrimSuffix(p, "/Contents/Developer"); root != p {
		return root
	}
	if strings.Contains(p, "CommandLineTools") {
		return ""
	}
	return p
}

// Latest returns the newest Xcode known to run on this host's OS. Unknown
// releases (pre-release seeds) fall back to the newest supported line.
func (x *Xcode) Latest() version.Version {
	if r := platform.FindRelease(x.osVersion); r != nil {
		return r.LatestXcode
	}
	return platform.NewestSupported().LatestXcode
}

// Minimum returns the oldest Xcode able to build packages on this host's OS.
func (x *Xcode) Minimum() version.Version {
	if r := platform.FindRelease(x.osVersion); r != nil {
		return r.MinimumXcode
	}
	return platform.NewestSupported().MinimumXcode
}

// Outdated reports an installed Xcode older than Latest.
func (x *Xcode) Outdated() bool {
	return x.Installed() && version.Less(x.Version(), x.Latest())
}

// BelowMinimum reports an installed Xcode too old to build packages at all.
func (x *Xcode) BelowMinimum() bool {
	return x.Installed() && version.Less(x.Version(), x.Minimum())
}

// RequiresCLT reports whether this Xcode needs a separate Command Line
// Tools package for command-line builds.
func (x *Xcode) RequiresCLT() bool {
	return x.Installed() && version.AtLeast(x.Version(), xcodeWithoutCLT)
}

// UpdateInstructions tells the user where to obtain the Xcode this host
// should be running.
func (x *Xcode) UpdateInstructions() string {
	if platform.FindRelease(x.osVersion) == nil {
		return "Xcode can be installed from https://developer.apple.com/download/all/\n" +
			"(the App Store only carries builds for released versions of macOS)."
	}
	return "Xcode can be updated from the App Store or https://developer.apple.com/download/all/."
}
