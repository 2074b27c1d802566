// Package health turns service groups into a health report: every target is
// probed once, classified, and recorded in its section in configuration order.
package health

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/soul23/healthchecker/internal/domain"
	"github.com/soul23/healthchecker/internal/probe"
)

// Aggregator probes targets and assembles section reports.
type Aggregator struct {
	Checker probe.Checker
	Logger  *zap.Logger
	// Concurrency bounds in-flight probes. 1 runs them sequentially in
	// configuration order.
	Concurrency int
}

func NewAggregator(c probe.Checker, logger *zap.Logger, concurrency int) *Aggregator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Aggregator{Checker: c, Logger: logger, Concurrency: concurrency}
}

// BuildSection probes every target of one group.
func (a *Aggregator) BuildSection(ctx context.Context, g domain.Group) domain.Section {
	return a.BuildSections(ctx, g)[0]
}

// BuildSections probes all groups through one worker pool. Every target
// yields exactly one entry at its configured position.
func (a *Aggregator) BuildSections(ctx context.Context, groups ...domain.Group) []domain.Section {
	out := make([]domain.Section, len(groups))
	for i, g := range groups {
		out[i] = make(domain.Section, len(g))
	}

	limit := a.Concurrency
	if limit < 1 {
		limit = 1
	}
	var eg errgroup.Group
	eg.SetLimit(limit)
	for gi, g := range groups {
		for ti, t := range g {
			eg.Go(func() error {
				out[gi][ti] = domain.Entry{Name: t.Name, URL: t.Address, Result: a.probe(ctx, t)}
				return nil
			})
		}
	}
	_ = eg.Wait()
	return out
}

// probe runs one strategy. A panicking strategy marks only its own target down.
func (a *Aggregator) probe(ctx context.Context, t domain.Target) (res domain.Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			id := uuid.NewString()
			a.Logger.Error("probe_panic",
				zap.String("correlation_id", id),
				zap.String("target", t.Name),
				zap.String("panic", fmt.Sprint(r)),
				zap.ByteString("stack", debug.Stack()),
			)
			res = domain.Result{Status: domain.Status{
				Level: domain.LevelDown,
				Text:  "🔴 Error interno (" + id + ")",
			}}
		}
	}()

	res = a.Checker.Check(ctx, t)

	a.Logger.Debug("probe_done",
		zap.String("target", t.Name),
		zap.String("kind", string(t.Kind)),
		zap.Int("code", res.Code),
		zap.String("level", res.Status.Level.String()),
		zap.Duration("took", time.Since(start)),
	)
	if res.Numeric && res.Code == 0 && a.Logger.Core().Enabled(zap.DebugLevel) {
		dns := probe.CheckDNS(ctx, t.Address)
		a.Logger.Debug("dns_check",
			zap.String("target", t.Name),
			zap.String("host", dns.Host),
			zap.String("class", dns.Class),
			zap.String("cname", dns.CNAME),
			zap.Strings("nameservers", dns.Nameservers),
			zap.String("resolver_error", dns.ResolverError),
		)
	}
	return res
}
