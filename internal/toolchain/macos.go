package toolchain

import (
	"context"

	"github.com/maltbrew/malt/internal/version"
)

// MacOSVersion probes the host OS version via sw_vers. Returns version.Zero
// when the probe fails, which downstream facts treat as "unknown release".
func MacOSVersion(ctx context.Context, r Runner) version.Version {
	out, code, err := r.Run(ctx, "sw_vers", "-productVersion")
	if err != nil || code != 0 {
		return version.Zero
	}
	return version.New(out)
}
