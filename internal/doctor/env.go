package doctor

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/maltbrew/malt/internal/config"
	"github.com/maltbrew/malt/internal/version"
)

// XcodeInfo is what checks need to know about the installed Xcode.
type XcodeInfo interface {
	Installed() bool
	Version() version.Version
	Latest() version.Version
	Minimum() version.Version
	Outdated() bool
	BelowMinimum() bool
	RequiresCLT() bool
	SelectedPath() string
	Prefix() string
	UpdateInstructions() string
}

// CLTInfo is what checks need to know about the Command Line Tools.
type CLTInfo interface {
	Installed() bool
	Version() version.Version
	Latest() version.Version
	Minimum() version.Version
	Outdated() bool
	BelowMinimum() bool
	UpdateInstructions() string
}

// XQuartzInfo is what checks need to know about XQuartz.
type XQuartzInfo interface {
	Installed() bool
	Version() version.Version
	Latest() version.Version
	Outdated() bool
}

// HostFacts is what checks need to know about the host OS and the
// reporting policy the environment selects.
type HostFacts interface {
	OSVersion() version.Version
	PrettyName() string
	PrereleaseOS() bool
	OutOfSupportOS() bool
	CI() bool
	Developer() bool
}

// Package is the keg surface leftover checks consult.
type Package interface {
	// InstallRoot is the package's managed install directory, containing
	// every installed version.
	InstallRoot() string
	// Linked reports whether the package's files are linked into the
	// prefix.
	Linked() bool
	// KegOnly reports whether the package is never linked by policy.
	KegOnly() bool
}

// PackageLookup finds installed packages. Lookup errors mean "not
// installed"; checks degrade to no finding.
type PackageLookup interface {
	Lookup(name string) (Package, error)
}

// VolumeResolver resolves a path to the mount point of its containing
// volume.
type VolumeResolver interface {
	Which(path string) (string, error)
}

// RunCommandFunc executes a host command and returns its combined output
// and exit code. err is non-nil only when the command could not run.
type RunCommandFunc func(name string, args ...string) (output string, exitCode int, err error)

// Env bundles everything checks read: resolved paths, toolchain and host
// facts, package lookup, volume resolution, and the process environment.
// Provider fields must be set by the caller; the function fields may be
// left nil and default to the host implementations, or be replaced by
// fakes to stage any host condition deterministically.
type Env struct {
	// Paths is the effective malt directory layout.
	Paths config.Config

	Xcode   XcodeInfo
	CLT     CLTInfo
	XQuartz XQuartzInfo
	Host    HostFacts

	Packages PackageLookup
	Volumes  VolumeResolver

	// RunCommand executes host commands for probes that inspect output
	// and exit status together. nil leaves those probes inconclusive.
	RunCommand RunCommandFunc

	// Getenv reads the process environment. nil defaults to os.Getenv.
	Getenv func(key string) string

	// Exists reports whether a path exists. nil defaults to os.Stat.
	Exists func(path string) bool

	// IsDir reports whether a path is an existing directory. nil
	// defaults to os.Stat.
	IsDir func(path string) bool

	// Writable reports whether the invoking user may write to a path.
	// nil defaults to an access(2) probe.
	Writable func(path string) bool

	// MkdirTemp creates a scratch directory. nil defaults to
	// os.MkdirTemp.
	MkdirTemp func(dir, pattern string) (string, error)

	// RemoveAll deletes a scratch directory. nil defaults to
	// os.RemoveAll.
	RemoveAll func(path string) error
}

// normalize fills nil function fields with host defaults.
func (e *Env) normalize() {
	if e.Getenv == nil {
		e.Getenv = os.Getenv
	}
	if e.Exists == nil {
		e.Exists = func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		}
	}
	if e.IsDir == nil {
		e.IsDir = func(path string) bool {
			info, err := os.Stat(path)
			return err == nil && info.IsDir()
		}
	}
	if e.Writable == nil {
		e.Writable = func(path string) bool {
			return unix.Access(path, unix.W_OK) == nil
		}
	}
	if e.MkdirTemp == nil {
		e.MkdirTemp = os.MkdirTemp
	}
	if e.RemoveAll == nil {
		e.RemoveAll = os.RemoveAll
	}
}
