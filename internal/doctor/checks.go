package doctor

// Checks builds the diagnostic catalog over an environment. Each check
// method reads host state only through the env, reports at most one
// finding, and returns nil when the condition is absent, not applicable,
// or unanswerable.
type Checks struct {
	env *Env
}

// NewChecks returns the catalog factory over env, filling env's nil
// function fields with host defaults.
func NewChecks(env *Env) *Checks {
	env.normalize()
	return &Checks{env: env}
}

// All returns every general-purpose check in catalog order.
func (c *Checks) All() []Check {
	return []Check{
		{Name: "check_xcode_license_approved", Run: c.checkXcodeLicenseApproved},
		{Name: "check_for_unsupported_macos", Run: c.checkForUnsupportedMacOS},
		{Name: "check_xcode_minimum_version", Run: c.checkXcodeMinimumVersion},
		{Name: "check_xcode_up_to_date", Run: c.checkXcodeUpToDate},
		{Name: "check_clt_minimum_version", Run: c.checkCLTMinimumVersion},
		{Name: "check_clt_up_to_date", Run: c.checkCLTUpToDate},
		{Name: "check_if_xcode_needs_clt", Run: c.checkIfXcodeNeedsCLT},
		{Name: "check_xcode_prefix", Run: c.checkXcodePrefix},
		{Name: "check_xcode_select_path", Run: c.checkXcodeSelectPath},
		{Name: "check_for_installed_developer_tools", Run: c.checkForInstalledDeveloperTools},
		{Name: "check_xquartz_up_to_date", Run: c.checkXQuartzUpToDate},
		{Name: "check_tmpdir", Run: c.checkTmpdir},
		{Name: "check_user_path", Run: c.checkUserPath},
		{Name: "check_access_directories", Run: c.checkAccessDirectories},
		{Name: "check_filesystem_case_sensitive", Run: c.checkFilesystemCaseSensitive},
		{Name: "check_for_multiple_volumes", Run: c.checkForMultipleVolumes},
		{Name: "check_for_gettext", Run: c.checkForGettext},
		{Name: "check_for_iconv", Run: c.checkForIconv},
	}
}

// Registry builds the validated registry over the full catalog.
func (c *Checks) Registry() (*Registry, error) {
	return NewRegistry(c.All())
}
