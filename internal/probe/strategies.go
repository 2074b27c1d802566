package probe

import (
	"context"
	"time"

	"github.com/soul23/healthchecker/internal/domain"
)

// Options tunes the strategy table.
type Options struct {
	Timeout       time.Duration
	VendorTimeout time.Duration
	IncidentsURL  string
}

// Strategies dispatches a target to the checker registered for its kind.
type Strategies map[domain.ProbeKind]Checker

// NewStrategies builds the standard table sharing one client.
func NewStrategies(c *Client, opts Options) Strategies {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.VendorTimeout <= 0 {
		opts.VendorTimeout = DefaultVendorTimeout
	}
	if opts.IncidentsURL == "" {
		opts.IncidentsURL = DefaultIncidentsURL
	}

	generic := NewHTTPChecker(c, opts.Timeout)
	return Strategies{
		domain.KindGeneric: generic,
		// the self check keeps the generic budget
		domain.KindSelfCheck:  &SelfChecker{Client: c, Timeout: opts.Timeout},
		domain.KindStatusPage: &StatusPageChecker{Client: c, Timeout: opts.VendorTimeout},
		domain.KindIncidents: &IncidentsChecker{
			Client:   c,
			Fallback: generic,
			FeedURL:  opts.IncidentsURL,
			Keywords: IncidentKeywords,
			Timeout:  opts.VendorTimeout,
		},
		domain.KindJSONStatus: &JSONStatusChecker{Client: c, Timeout: opts.VendorTimeout},
	}
}

// Check runs the checker for target.Kind, falling back to the generic one.
func (s Strategies) Check(ctx context.Context, target domain.Target) domain.Result {
	if c, ok := s[target.Kind]; ok {
		return c.Check(ctx, target)
	}
	return s[domain.KindGeneric].Check(ctx, target)
}
