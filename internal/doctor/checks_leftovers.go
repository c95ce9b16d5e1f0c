package doctor

// checkForGettext reports stray gettext files under the system prefixes.
// Leftovers from manual installs or other package managers get picked up by
// the linker ahead of malt's own and cause build and link failures.
//
// Files belonging to malt's own gettext keg are fine: when the keg is
// linked and every found file canonically resolves under its install root,
// there is nothing to report.
func (c *Checks) checkForGettext() *Diagnostic {
	env := c.env
	list := NewFileList(env.Paths.SystemPrefixes(), env.Exists)
	list.Find(
		"lib/libgettextlib.dylib",
		"lib/libintl.dylib",
		"include/libintl.h",
	)
	if list.Empty() {
		return nil
	}

	if keg, err := env.Packages.Lookup("gettext"); err == nil {
		if keg.Linked() && list.AllUnder(keg.InstallRoot()) {
			return nil
		}
	}

	return ListDiagnostic("gettext files detected at a system prefix.\n"+
		"These files can cause compilation and link failures, especially when\n"+
		"they were built for the wrong architecture. Consider removing:",
		list.Found())
}

// checkForIconv reports libiconv interfering with builds. macOS ships
// libiconv in /usr and packages expect to link against that copy.
//
// The policy differs from gettext on purpose: a malt libiconv keg that is
// linked (and not keg-only) is itself the problem and gets its own
// advisory; stray files are reported as a list only when no such keg
// explains them.
func (c *Checks) checkForIconv() *Diagnostic {
	env := c.env
	list := NewFileList(env.Paths.SystemPrefixes(), env.Exists)
	list.Find(
		"lib/libiconv.dylib",
		"include/iconv.h",
	)
	if list.Empty() {
		return nil
	}

	if keg, err := env.Packages.Lookup("libiconv"); err == nil && keg.Linked() && !keg.KegOnly() {
		return Newf("A libiconv package is installed and linked.\n" +
			"macOS provides libiconv in /usr and packages expect to link against it.\n" +
			"A linked libiconv shadows the system copy and breaks builds. Unlink it:\n" +
			"    malt unlink libiconv")
	}

	return ListDiagnostic("libiconv files detected at a system prefix other than /usr.\n"+
		"malt links packages against the system libiconv; copies in other\n"+
		"prefixes cause compile or link failures. Consider removing:",
		list.Found())
}
