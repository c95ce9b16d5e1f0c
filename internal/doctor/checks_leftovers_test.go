package doctor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltbrew/malt/internal/config"
)

// gettextFixture lays out a malt tree inside a real temp directory: a
// gettext keg in the cellar and a prefix lib symlink pointing into it, the
// layout a linked keg leaves on disk. Paths outside the tree do not exist,
// so the classic system prefixes stay silent regardless of the host.
func gettextFixture(t *testing.T) (*Env, string) {
	t.Helper()
	root := t.TempDir()
	prefix := filepath.Join(root, "opt", "malt")
	kegRoot := filepath.Join(prefix, "Cellar", "gettext")

	target := filepath.Join(kegRoot, "0.26", "lib", "libintl.dylib")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("dylib"), 0o644))

	link := filepath.Join(prefix, "lib", "libintl.dylib")
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0o755))
	require.NoError(t, os.Symlink(target, link))

	env := healthyEnv(t)
	env.Paths = config.Config{
		Prefix:     prefix,
		Cellar:     filepath.Join(prefix, "Cellar"),
		Repository: filepath.Join(prefix, "Library"),
		Temp:       root,
	}
	env.Exists = func(path string) bool {
		if !strings.HasPrefix(path, root+string(filepath.Separator)) {
			return false
		}
		_, err := os.Stat(path)
		return err == nil
	}
	return env, kegRoot
}

func TestCheckForGettext(t *testing.T) {
	t.Run("linked keg owning every file is not a finding", func(t *testing.T) {
		env, kegRoot := gettextFixture(t)
		env.Packages = fakePackages{"gettext": {installRoot: kegRoot, linked: true}}
		c := NewChecks(env)

		assert.Nil(t, c.checkForGettext())
	})

	t.Run("unlinked keg does not explain the files", func(t *testing.T) {
		env, kegRoot := gettextFixture(t)
		env.Packages = fakePackages{"gettext": {installRoot: kegRoot, linked: false}}
		c := NewChecks(env)

		d := c.checkForGettext()
		require.NotNil(t, d)
		require.Len(t, d.Files, 1)
		assert.Contains(t, d.Files[0], "libintl.dylib")
		assert.Contains(t, d.Message, d.Files[0])
	})

	t.Run("file outside the keg breaks ownership", func(t *testing.T) {
		env, kegRoot := gettextFixture(t)
		stray := filepath.Join(env.Paths.Prefix, "include", "libintl.h")
		require.NoError(t, os.MkdirAll(filepath.Dir(stray), 0o755))
		require.NoError(t, os.WriteFile(stray, []byte("header"), 0o644))
		env.Packages = fakePackages{"gettext": {installRoot: kegRoot, linked: true}}
		c := NewChecks(env)

		d := c.checkForGettext()
		require.NotNil(t, d)
		assert.Len(t, d.Files, 2)
		assert.Contains(t, d.Message, stray)
	})

	t.Run("no gettext package installed", func(t *testing.T) {
		env, _ := gettextFixture(t)
		env.Packages = fakePackages{}
		c := NewChecks(env)

		d := c.checkForGettext()
		require.NotNil(t, d)
		assert.Contains(t, d.Message, "gettext files detected")
	})

	t.Run("nothing found", func(t *testing.T) {
		c := NewChecks(healthyEnv(t))
		assert.Nil(t, c.checkForGettext())
	})
}

func TestCheckForIconv(t *testing.T) {
	// The iconv fragments only need to appear to exist; the policy
	// branches on the keg, not on canonical paths.
	found := func(env *Env) {
		env.Exists = func(path string) bool {
			return path == "/usr/local/lib/libiconv.dylib"
		}
	}

	t.Run("linked non-keg-only package gets the unlink advisory", func(t *testing.T) {
		env := healthyEnv(t)
		found(env)
		env.Packages = fakePackages{"libiconv": {linked: true, kegOnly: false}}
		c := NewChecks(env)

		d := c.checkForIconv()
		require.NotNil(t, d)
		assert.Contains(t, d.Message, "installed and linked")
		assert.Contains(t, d.Message, "malt unlink libiconv")
		assert.Empty(t, d.Files)
	})

	t.Run("keg-only package gets the file list instead", func(t *testing.T) {
		env := healthyEnv(t)
		found(env)
		env.Packages = fakePackages{"libiconv": {linked: true, kegOnly: true}}
		c := NewChecks(env)

		d := c.checkForIconv()
		require.NotNil(t, d)
		assert.Equal(t, []string{"/usr/local/lib/libiconv.dylib"}, d.Files)
	})

	t.Run("unlinked package gets the file list", func(t *testing.T) {
		env := healthyEnv(t)
		found(env)
		env.Packages = fakePackages{"libiconv": {linked: false}}
		c := NewChecks(env)

		d := c.checkForIconv()
		require.NotNil(t, d)
		assert.Equal(t, []string{"/usr/local/lib/libiconv.dylib"}, d.Files)
	})

	t.Run("package absent gets the file list", func(t *testing.T) {
		env := healthyEnv(t)
		found(env)
		c := NewChecks(env)

		d := c.checkForIconv()
		require.NotNil(t, d)
		assert.Equal(t, []string{"/usr/local/lib/libiconv.dylib"}, d.Files)
		assert.Contains(t, d.Message, "libiconv files detected")
	})

	t.Run("nothing found", func(t *testing.T) {
		c := NewChecks(healthyEnv(t))
		assert.Nil(t, c.checkForIconv())
	})
}
