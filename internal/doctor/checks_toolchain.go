package doctor

import "strings"

// defaultXcodeBundle is where the App Store installs Xcode. Advisories call
// out installs elsewhere because shell scripts in package builds tend to
// assume it.
const defaultXcodeBundle = "/Applications/Xcode.app"

// checkXcodeLicenseApproved reports an Xcode whose license the user has not
// accepted yet, which makes every xcrun-launched tool exit with a license
// prompt instead of running. Both signals are required: the license text in
// the output and a failing exit status.
func (c *Checks) checkXcodeLicenseApproved() *Diagnostic {
	env := c.env
	if !env.Xcode.Installed() || env.RunCommand == nil {
		return nil
	}
	out, code, err := env.RunCommand("/usr/bin/xcrun", "clang", "--version")
	if err != nil {
		return nil
	}
	if code == 0 || !strings.Contains(out, "license") {
		return nil
	}
	return Newf("You have not agreed to the Xcode license.\n" +
		"Builds will fail. Agree to the license by opening Xcode.app or running:\n" +
		"    sudo xcodebuild -license")
}

// checkXcodeMinimumVersion reports an Xcode too old to build packages on
// this macOS release at all.
func (c *Checks) checkXcodeMinimumVersion() *Diagnostic {
	x := c.env.Xcode
	if !x.Installed() || !x.BelowMinimum() {
		return nil
	}
	installed := x.Version().String()
	if prefix := x.Prefix(); prefix != "" && prefix != defaultXcodeBundle {
		installed += " => " + prefix
	}
	return Newf("Your Xcode (%s) is below the minimum version %s.\n"+
		"Please update to Xcode %s (or delete it).\n%s",
		installed, x.Minimum(), x.Latest(), x.UpdateInstructions())
}

// checkXcodeUpToDate reports an outdated Xcode. Suppressed on CI hosts,
// whose images routinely lag Xcode releases and are not the user's to fix.
func (c *Checks) checkXcodeUpToDate() *Diagnostic {
	x := c.env.Xcode
	if !x.Installed() || !x.Outdated() {
		return nil
	}
	if c.env.Host.CI() {
		return nil
	}
	return Newf("Your Xcode (%s) is outdated.\n"+
		"Please update to Xcode %s (or delete it).\n%s",
		x.Version(), x.Latest(), x.UpdateInstructions())
}

// checkCLTMinimumVersion reports Command Line Tools too old to build
// packages on this macOS release at all.
func (c *Checks) checkCLTMinimumVersion() *Diagnostic {
	clt := c.env.CLT
	if !clt.Installed() || !clt.BelowMinimum() {
		return nil
	}
	return Newf("Your Command Line Tools (%s) are below the minimum version %s.\n%s",
		clt.Version(), clt.Minimum(), clt.UpdateInstructions())
}

// checkCLTUpToDate reports outdated Command Line Tools. CI-suppressed for
// the same reason as checkXcodeUpToDate.
func (c *Checks) checkCLTUpToDate() *Diagnostic {
	clt := c.env.CLT
	if !clt.Installed() || !clt.Outdated() {
		return nil
	}
	if c.env.Host.CI() {
		return nil
	}
	return Newf("Your Command Line Tools (%s) are outdated.\n"+
		"The latest release is %s.\n%s",
		clt.Version(), clt.Latest(), clt.UpdateInstructions())
}

// checkIfXcodeNeedsCLT reports an Xcode new enough to ship without the
// command-line toolchain when the separate Command Line Tools package is
// missing.
func (c *Checks) checkIfXcodeNeedsCLT() *Diagnostic {
	env := c.env
	if !env.Xcode.Installed() || !env.Xcode.RequiresCLT() || env.CLT.Installed() {
		return nil
	}
	return Newf("Xcode alone is not sufficient on %s.\n"+
		"Install the Command Line Tools:\n"+
		"    xcode-select --install",
		env.Host.PrettyName())
}

// checkXcodePrefix reports an Xcode installed to a path with a space in it,
// which breaks the shell steps of many package builds.
func (c *Checks) checkXcodePrefix() *Diagnostic {
	prefix := c.env.Xcode.Prefix()
	if prefix == "" {
		return nil
	}
	if !strings.Contains(prefix, " ") {
		return nil
	}
	return Newf("Xcode is installed to a directory with a space in the name:\n"+
		"    %s\n"+
		"This will cause some packages to fail to build.", prefix)
}

// checkXcodeSelectPath reports a configured developer directory that does
// not exist, which leaves xcrun and friends unable to find any toolchain.
func (c *Checks) checkXcodeSelectPath() *Diagnostic {
	env := c.env
	selected := env.Xcode.SelectedPath()
	if selected == "" {
		return nil
	}
	if env.IsDir(selected) {
		return nil
	}
	return Newf("Your Xcode is configured with an invalid developer directory:\n"+
		"    %s\n"+
		"You should change it to the correct path:\n"+
		"    sudo xcode-select --switch %s/Contents/Developer",
		selected, defaultXcodeBundle)
}

// checkForInstalledDeveloperTools reports a host with no compiler toolchain
// at all.
func (c *Checks) checkForInstalledDeveloperTools() *Diagnostic {
	env := c.env
	if env.Xcode.Installed() || env.CLT.Installed() {
		return nil
	}
	return Newf("No developer tools installed.\n" +
		"Install the Command Line Tools:\n" +
		"    xcode-select --install")
}

// checkXQuartzUpToDate reports an outdated XQuartz. Packages linking
// against its libraries record the version they built with, so a stale
// XQuartz quietly breaks them. CI-suppressed.
func (c *Checks) checkXQuartzUpToDate() *Diagnostic {
	q := c.env.XQuartz
	if !q.Installed() || !q.Outdated() {
		return nil
	}
	if c.env.Host.CI() {
		return nil
	}
	return Newf("Your XQuartz (%s) is outdated.\n"+
		"Please install XQuartz %s from https://www.xquartz.org.",
		q.Version(), q.Latest())
}
