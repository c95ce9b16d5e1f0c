// Package volumes resolves which mounted volume contains a path, by
// climbing from the path toward the filesystem root until the device ID
// changes. The last directory on the original device is the mount point.
package volumes

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Volumes resolves paths to the mount point of their containing volume.
type Volumes struct{}

// New returns a volume resolver backed by stat device IDs.
func New() *Volumes {
	return &Volumes{}
}

// Which returns the mount point of the volume containing path. Symlinks
// are resolved first so a path reports the volume of its target, not of
// the link.
func (v *Volumes) Which(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	resolved, err = filepath.Abs(resolved)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	var st unix.Stat_t
	if err := unix.Stat(resolved, &st); err != nil {
		return "", fmt.Errorf("stat %s: %w", resolved, err)
	}
	dev := st.Dev

	mount := resolved
	for {
		parent := filepath.Dir(mount)
		if parent == mount {
			// Reached the root, which is its own mount point.
			return mount, nil
		}
		var pst unix.Stat_t
		if err := unix.Stat(parent, &pst); err != nil {
			return "", fmt.Errorf("stat %s: %w", parent, err)
		}
		if pst.Dev != dev {
			return mount, nil
		}
		mount = parent
	}
}
