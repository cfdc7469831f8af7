package repokit

import (
	"context"
	"time"

	perr "prodanalytics/internal/platform/errors"
)

// Pinger is any dependency that can report readiness
type Pinger interface{ Ping(context.Context) error }

// DefaultPingTimeout bounds Ready when ctx has no deadline
const DefaultPingTimeout = 5 * time.Second

// Ready pings p and reports an unavailable error naming the dependency
func Ready(ctx context.Context, name string, p Pinger) error {
	if p == nil {
		return perr.Newf(perr.ErrorCodeUnavailable, "%s: not configured", name)
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultPingTimeout)
		defer cancel()
	}
	if err := p.Ping(ctx); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s ping failed", name)
	}
	return nil
}
