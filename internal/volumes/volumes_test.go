package volumes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhichRoot(t *testing.T) {
	mount, err := New().Which("/")
	require.NoError(t, err)
	assert.Equal(t, "/", mount)
}

func TestWhichReturnsContainingMount(t *testing.T) {
	dir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	mount, err := New().Which(dir)
	require.NoError(t, err)

	// The mount point contains the path and exists.
	assert.True(t, mount == "/" || strings.HasPrefix(resolved+"/", mount+"/"),
		"mount %q should contain %q", mount, resolved)
	info, err := os.Stat(mount)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWhichFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0o755))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	viaLink, err := New().Which(link)
	require.NoError(t, err)
	viaTarget, err := New().Which(target)
	require.NoError(t, err)
	assert.Equal(t, viaTarget, viaLink)
}

func TestWhichMissingPath(t *testing.T) {
	_, err := New().Which(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
