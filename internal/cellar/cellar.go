// Package cellar reads the installed-package store: one directory per
// package under the cellar root, one subdirectory per installed version,
// with an install receipt inside each version directory and a symlink per
// linked package in the linked-records directory. Lookup answers the three
// questions diagnostics ask about a package: where it lives, whether it is
// linked into the prefix, and whether it is keg-only.
package cellar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/maltbrew/malt/internal/version"
)

// receiptName is the metadata file written into every keg at install time.
const receiptName = "INSTALL_RECEIPT.json"

// Cellar locates installed packages on disk.
type Cellar struct {
	// Root holds one directory per installed package.
	Root string

	// LinkedRecordsDir holds one symlink per linked package, pointing at
	// the version directory whose files are linked into the prefix.
	LinkedRecordsDir string
}

// New returns a Cellar over the given store directories.
func New(root, linkedRecordsDir string) *Cellar {
	return &Cellar{Root: root, LinkedRecordsDir: linkedRecordsDir}
}

// Keg is the newest installed version of a package.
type Keg struct {
	// Name is the package name.
	Name string

	// Version is the keg's version directory name.
	Version string

	// Path is the keg's version directory, Root/<name>/<version>.
	Path string

	installRoot string
	kegOnly     bool
	linked      bool
}

// InstallRoot returns the package's directory under the cellar root, which
// contains every installed version of it.
func (k *Keg) InstallRoot() string {
	return k.installRoot
}

// Linked reports whether the package has a linked-records entry, i.e. its
// files are symlinked into the prefix.
func (k *Keg) Linked() bool {
	return k.linked
}

// KegOnly reports whether the install receipt marks the package keg-only,
// meaning it is never linked into the prefix even when installed.
func (k *Keg) KegOnly() bool {
	return k.kegOnly
}

// receipt is the subset of the install receipt diagnostics need.
type receipt struct {
	KegOnly bool `json:"keg_only"`
}

// Lookup returns the newest installed keg of a package, or an error when
// the package is not installed.
func (c *Cellar) Lookup(name string) (*Keg, error) {
	installRoot := filepath.Join(c.Root, name)
	entries, err := os.ReadDir(installRoot)
	if err != nil {
		return nil, fmt.Errorf("%s is not installed: %w", name, err)
	}

	newest := ""
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if newest == "" || compareKegVersions(e.Name(), newest) > 0 {
			newest = e.Name()
		}
	}
	if newest == "" {
		return nil, fmt.Errorf("%s has no installed versions", name)
	}

	keg := &Keg{
		Name:        name,
		Version:     newest,
		Path:        filepath.Join(installRoot, newest),
		installRoot: installRoot,
		linked:      c.linkRecordExists(name),
	}

	if data, err := os.ReadFile(filepath.Join(keg.Path, receiptName)); err == nil {
		var r receipt
		if err := json.Unmarshal(data, &r); err == nil {
			keg.kegOnly = r.KegOnly
		}
	}
	return keg, nil
}

func (c *Cellar) linkRecordExists(name string) bool {
	_, err := os.Lstat(filepath.Join(c.LinkedRecordsDir, name))
	return err == nil
}

// compareKegVersions orders cellar version directories. A directory name
// may carry a rebuild suffix ("1.17_2") that orders after the bare version
// and within rebuilds numerically.
func compareKegVersions(a, b string) int {
	aBase, aRev := splitRevision(a)
	bBase, bRev := splitRevision(b)
	if cmp := version.Compare(version.New(aBase), version.New(bBase)); cmp != 0 {
		return cmp
	}
	switch {
	case aRev < bRev:
		return -1
	case aRev > bRev:
		return 1
	}
	return 0
}

func splitRevision(dir string) (base string, rev int) {
	base, suffix, found := strings.Cut(dir, "_")
	if !found {
		return dir, 0
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return dir, 0
	}
	return base, n
}
