package doctor

import (
	"strings"
)

// checkFilesystemCaseSensitive reports managed directories sitting on a
// case-sensitive filesystem. The default macOS filesystem is
// case-insensitive and a number of packages break on anything else.
//
// The probe never touches the disk: a directory is called case-sensitive
// when it exists but its fully upcased and downcased spellings do not both
// resolve. On a case-insensitive volume both spellings name the original
// directory, so both exist.
func (c *Checks) checkFilesystemCaseSensitive() *Diagnostic {
	env := c.env
	dirs := []string{
		env.Paths.Prefix,
		env.Paths.Repository,
		env.Paths.Cellar,
		env.Paths.Temp,
	}

	var caseSensitive []string
	for _, dir := range dirs {
		if !env.Exists(dir) {
			continue
		}
		if env.Exists(strings.ToUpper(dir)) && env.Exists(strings.ToLower(dir)) {
			continue
		}
		caseSensitive = append(caseSensitive, dir)
	}
	if len(caseSensitive) == 0 {
		return nil
	}

	// Report volumes, not directories: several affected directories
	// usually share one volume.
	var volumes []string
	seen := make(map[string]bool)
	for _, dir := range caseSensitive {
		vol, err := env.Volumes.Which(dir)
		if err != nil {
			vol = dir
		}
		if seen[vol] {
			continue
		}
		seen[vol] = true
		volumes = append(volumes, vol)
	}

	return Newf("The filesystem on %s appears to be case-sensitive.\n"+
		"The default macOS filesystem is case-insensitive. Some packages will\n"+
		"fail to build on case-sensitive volumes.", strings.Join(volumes, ", "))
}

// checkForMultipleVolumes reports a Cellar living on a different volume
// than the build scratch root. macOS will not move relative symlinks across
// volumes unless the target already exists, so staged builds break when the
// two are split.
//
// The temp volume is probed through a scratch directory created inside the
// temp root, which is removed again on every path out of the check. When
// the scratch directory cannot be created the check stays silent.
func (c *Checks) checkForMultipleVolumes() *Diagnostic {
	env := c.env
	if !env.Exists(env.Paths.Cellar) {
		return nil
	}
	whereCellar, err := env.Volumes.Which(env.Paths.Cellar)
	if err != nil {
		return nil
	}

	tmp, err := env.MkdirTemp(env.Paths.Temp, "malt-doctor-")
	if err != nil {
		return nil
	}
	defer env.RemoveAll(tmp)

	whereTemp, err := env.Volumes.Which(tmp)
	if err != nil {
		return nil
	}
	if whereCellar == whereTemp {
		return nil
	}

	return Newf("Your Cellar and temp directories are on different volumes:\n"+
		"    %s is on %s\n"+
		"    %s is on %s\n"+
		"macOS will not move relative symlinks across volumes unless the target\n"+
		"file already exists, which breaks staged builds.\n"+
		"Set MALT_TEMP to a directory on the same volume as your Cellar.",
		env.Paths.Cellar, whereCellar, env.Paths.Temp, whereTemp)
}
