package doctor

import (
	"fmt"
	"path/filepath"
	"strings"
)

// checkForUnsupportedMacOS reports a macOS release malt does not support:
// pre-release seeds and releases past their end of support. Developer mode
// silences it, since maintainers run seeds on purpose.
func (c *Checks) checkForUnsupportedMacOS() *Diagnostic {
	host := c.env.Host
	if host.Developer() {
		return nil
	}

	who := "We"
	var what string
	switch {
	case host.PrereleaseOS():
		what = "pre-release version"
	case host.OutOfSupportOS():
		who = "We (and Apple)"
		what = "old version"
	default:
		return nil
	}

	return Newf("You are using %s.\n"+
		"%s do not provide support for this %s.\n"+
		"You may encounter build failures or other breakages.\n"+
		"Please update to a supported macOS release before reporting issues.",
		host.PrettyName(), who, what)
}

// checkTmpdir reports a TMPDIR environment variable pointing at a
// directory that does not exist. Builds stage there and fail confusingly
// when it is missing. An unset TMPDIR is fine.
func (c *Checks) checkTmpdir() *Diagnostic {
	env := c.env
	tmpdir := env.Getenv("TMPDIR")
	if tmpdir == "" || env.IsDir(tmpdir) {
		return nil
	}
	return Newf("TMPDIR %q doesn't exist.", tmpdir)
}

// checkUserPath reports a PATH missing malt's bin directory, which makes
// installed packages invisible to the shell.
func (c *Checks) checkUserPath() *Diagnostic {
	env := c.env
	bin := filepath.Join(env.Paths.Prefix, "bin")
	for _, dir := range filepath.SplitList(env.Getenv("PATH")) {
		if dir == "" {
			continue
		}
		if filepath.Clean(dir) == bin {
			return nil
		}
	}
	return Newf("malt's bin directory is not in your PATH.\n"+
		"Packages installed by malt will not be found until you add\n"+
		"    %s\n"+
		"to your PATH.", bin)
}

// checkAccessDirectories reports standard malt directories that exist but
// are not writable by the invoking user. Installs and links fail part-way
// through when one of these is root-owned.
func (c *Checks) checkAccessDirectories() *Diagnostic {
	env := c.env
	var notWritable []string
	for _, dir := range env.Paths.StandardDirectories() {
		if !env.Exists(dir) {
			continue
		}
		if env.Writable(dir) {
			continue
		}
		notWritable = append(notWritable, dir)
	}
	if len(notWritable) == 0 {
		return nil
	}

	d := ListDiagnostic("The following directories are not writable by your user:", notWritable)
	d.Message += fmt.Sprintf("\n\nYou should change the ownership of these directories to your user:\n"+
		"    sudo chown -R $(whoami) %s", strings.Join(notWritable, " "))
	return d
}
