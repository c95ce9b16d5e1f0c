// Package version provides loose version comparison for toolchain and OS
// release strings such as "14.2", "16.2.1" or "2.8.5".
//
// Apple's tools report versions with one to many dot-separated components
// (pkgutil receipts append build counters like "15.3.0.0.1.1708646388").
// This package normalizes them to at most three components and compares
// with golang.org/x/mod/semver.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is a loosely-formatted release version. The zero value means
// "unknown / not installed" and compares below every valid version.
type Version string

// Zero is the unknown version.
const Zero Version = ""

// New trims surrounding whitespace and returns the value as a Version.
func New(s string) Version {
	return Version(strings.TrimSpace(s))
}

// IsZero reports whether the version is unknown.
func (v Version) IsZero() bool {
	return strings.TrimSpace(string(v)) == ""
}

// String returns the original (trimmed) version string.
func (v Version) String() string {
	return strings.TrimSpace(string(v))
}

// canonical converts the version to the "vMAJOR.MINOR.PATCH" form semver
// understands, keeping at most the first three components.
func (v Version) canonical() string {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return ""
	}
	s = strings.TrimPrefix(s, "v")
	if parts := strings.Split(s, "."); len(parts) > 3 {
		s = strings.Join(parts[:3], ".")
	}
	return "v" + s
}

// Valid reports whether the version parses after normalization.
func (v Version) Valid() bool {
	return semver.IsValid(v.canonical())
}

// Compare returns -1, 0, or +1 depending on whether a is less than, equal
// to, or greater than b. An invalid or unknown version compares less than
// any valid one (semver's convention).
func Compare(a, b Version) int {
	return semver.Compare(a.canonical(), b.canonical())
}

// AtLeast reports whether v is o or newer. An unknown v is never AtLeast
// a valid o.
func (v Version) AtLeast(o Version) bool {
	return Compare(v, o) >= 0
}

// Less reports whether v is strictly older than o.
func (v Version) Less(o Version) bool {
	return Compare(v, o) < 0
}

// AtLeast reports whether a is b or newer.
func AtLeast(a, b Version) bool {
	return a.AtLeast(b)
}

// Less reports whether a is strictly older than b.
func Less(a, b Version) bool {
	return a.Less(b)
}

// Major returns the major component ("16.2.1" → "16"), or "" when unknown.
func (v Version) Major() string {
	c := v.canonical()
	if !semver.IsValid(c) {
		return ""
	}
	return strings.TrimPrefix(semver.Major(c), "v")
}
