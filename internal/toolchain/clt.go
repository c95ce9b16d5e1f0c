package toolchain

import (
	"bufio"
	"context"
	"strings"
	"sync"

	"github.com/maltbrew/malt/internal/platform"
	"github.com/maltbrew/malt/internal/version"
)

// cltPackageID is the installer receipt pkgutil keeps for the Command Line
// Tools.
const cltPackageID = "com.apple.pkg.CLTools_Executables"

// CLT probes the standalone Command Line Tools package through its pkgutil
// receipt.
type CLT struct {
	runner    Runner
	osVersion version.Version

	once    sync.Once
	version version.Version
	err     error
}

// NewCLT returns a Command Line Tools probe for a host running osVersion.
func NewCLT(r Runner, osVersion version.Version) *CLT {
	return &CLT{runner: r, osVersion: osVersion}
}

func (c *CLT) load(ctx context.Context) error {
	c.once.Do(func() {
		out, code, err := c.runner.Run(ctx, "pkgutil", "--pkg-info="+cltPackageID)
		if err != nil {
			c.err = err
			return
		}
		if code != 0 {
			// No receipt means the package was never installed.
			return
		}
		c.version = parsePkgutilVersion(out)
	})
	return c.err
}

// parsePkgutilVersion extracts the "version:" field from pkgutil --pkg-info
// output. Receipt versions carry build metadata in extra components, e.g.
// "15.3.0.0.1.1708646388", which version.Compare tolerates.
func parsePkgutilVersion(out string) version.Version {
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(line, "version:"); ok {
			return version.New(rest)
		}
	}
	return version.Zero
}

// Version returns the installed Command Line Tools version, or version.Zero
// when the package is absent or the probe failed.
func (c *CLT) Version() version.Version {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	_ = c.load(ctx)
	return c.version
}

// Installed reports whether a Command Line Tools receipt exists.
func (c *CLT) Installed() bool {
	return !c.Version().IsZero()
}

// Latest returns the newest Command Line Tools for this host's OS. CLT
// releases track Xcode numbering.
func (c *CLT) Latest() version.Version {
	if r := platform.FindRelease(c.osVersion); r != nil {
		return r.LatestXcode
	}
	return platform.NewestSupported().LatestXcode
}

// Minimum returns the oldest Command Line Tools able to build packages on
// this host's OS.
func (c *CLT) Minimum() version.Version {
	if r := platform.FindRelease(c.osVersion); r != nil {
		return r.MinimumCLT
	}
	return platform.NewestSupported().MinimumCLT
}

// Outdated reports installed Command Line Tools older than Latest.
func (c *CLT) Outdated() bool {
	return c.Installed() && version.Less(c.Version(), c.Latest())
}

// BelowMinimum reports installed Command Line Tools too old to build
// packages at all.
func (c *CLT) BelowMinimum() bool {
	return c.Installed() && version.Less(c.Version(), c.Minimum())
}

// UpdateInstructions tells the user how to refresh the Command Line Tools.
func (c *CLT) UpdateInstructions() string {
	return "Update them from Software Update in System Settings.\n" +
		"\n" +
		"If no update shows up there, reinstall from scratch:\n" +
		"  sudo rm -rf /Library/Developer/CommandLineTools\n" +
		"  sudo xcode-select --install"
}
