// Package toolchain probes the Apple developer tooling malt builds with:
// Xcode, the Command Line Tools, XQuartz, and the host macOS version. Every
// probe shells out once, memoizes the answer, and degrades to a zero value
// when the command is missing or misbehaves. Nothing in this package returns
// a probe failure to its callers.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// probeTimeout bounds a single probe command when the caller did not warm
// the probes through Preload.
const probeTimeout = 30 * time.Second

// Runner executes external probe commands. The production implementation
// shells out; tests substitute canned transcripts.
type Runner interface {
	// Run executes name with args and returns the combined output and the
	// exit code. err is non-nil only when the command could not be run at
	// all (binary missing, context cancelled); a non-zero exit is reported
	// through the code, not err.
	Run(ctx context.Context, name string, args ...string) (output string, exitCode int, err error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, int, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", -1, fmt.Errorf("%s not found in PATH: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), exitErr.ExitCode(), nil
		}
		return string(out), -1, fmt.Errorf("%s failed to run: %w", name, err)
	}
	return string(out), 0, nil
}
