// Package probe holds the per-service check strategies. A strategy never
// fails: transport errors, timeouts and malformed bodies all resolve to a
// classified domain.Result.
package probe

import (
	"context"
	"time"

	"github.com/soul23/healthchecker/internal/domain"
)

const (
	DefaultTimeout       = 10 * time.Second
	DefaultVendorTimeout = 8 * time.Second
	DefaultIncidentsURL  = "https://status.cloud.google.com/incidents.json"
	UserAgent            = "HealthCheckMonitor/1.0"
)

// Checker performs a single check for a given target.
type Checker interface {
	Check(ctx context.Context, target domain.Target) domain.Result
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context, target domain.Target) domain.Result

func (f CheckerFunc) Check(ctx context.Context, target domain.Target) domain.Result {
	return f(ctx, target)
}
