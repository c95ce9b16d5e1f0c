package toolchain

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Probe is a memoized toolchain fact that can be warmed ahead of use. Only
// types in this package implement it.
type Probe interface {
	load(ctx context.Context) error
}

// Preload warms the given probes concurrently so that the strictly
// sequential diagnostic run that follows reads memoized values instead of
// paying for subprocess launches one at a time. Probes that fail stay
// memoized as absent; the first failure is returned for logging only and
// does not stop the other probes.
func Preload(ctx context.Context, probes ...Probe) error {
	var g errgroup.Group
	for _, p := range probes {
		g.Go(func() error {
			return p.load(ctx)
		})
	}
	return g.Wait()
}
