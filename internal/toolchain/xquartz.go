package toolchain

import (
	"context"
	"strings"
	"sync"

	"github.com/maltbrew/malt/internal/version"
)

const (
	// xquartzAppPath is where the XQuartz installer places the app bundle.
	xquartzAppPath = "/Applications/Utilities/XQuartz.app"

	// latestXQuartz is the newest XQuartz release malt knows about.
	latestXQuartz version.Version = "2.8.5"
)

// XQuartz probes the optional XQuartz display server through Spotlight
// metadata on its app bundle.
type XQuartz struct {
	runner Runner

	once    sync.Once
	version version.Version
	err     error
}

// NewXQuartz returns an XQuartz probe.
func NewXQuartz(r Runner) *XQuartz {
	return &XQuartz{runner: r}
}

func (q *XQuartz) load(ctx context.Context) error {
	q.once.Do(func() {
		out, code, err := q.runner.Run(ctx, "mdls", "-name", "kMDItemVersion", "-raw", xquartzAppPath)
		if err != nil {
			q.err = err
			return
		}
		if code != 0 {
			return
		}
		v := strings.TrimSpace(out)
		// mdls prints "(null)" for attributes it cannot resolve.
		if v == "" || v == "(null)" {
			return
		}
		q.version = version.New(v)
	})
	return q.err
}

// Version returns the installed XQuartz version, or version.Zero when the
// app is absent or the probe failed.
func (q *XQuartz) Version() version.Version {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	_ = q.load(ctx)
	return q.version
}

// Installed reports whether the XQuartz app bundle answered the probe.
func (q *XQuartz) Installed() bool {
	return !q.Version().IsZero()
}

// Latest returns the newest XQuartz release malt knows about.
func (q *XQuartz) Latest() version.Version {
	return latestXQuartz
}

// Outdated reports an installed XQuartz older than Latest.
func (q *XQuartz) Outdated() bool {
	return q.Installed() && version.Less(q.Version(), latestXQuartz)
}
