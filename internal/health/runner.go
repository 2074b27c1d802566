package health

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/soul23/healthchecker/internal/domain"
	"github.com/soul23/healthchecker/internal/sites"
)

// Dispatcher forwards a finished report. It never fails.
type Dispatcher interface {
	Dispatch(ctx context.Context, r domain.Report)
}

// Runner performs one complete check cycle.
type Runner struct {
	Source     sites.Source
	Aggregator *Aggregator
	Dispatcher Dispatcher
	Logger     *zap.Logger

	now func() time.Time
}

func NewRunner(src sites.Source, agg *Aggregator, d Dispatcher, logger *zap.Logger) *Runner {
	return &Runner{Source: src, Aggregator: agg, Dispatcher: d, Logger: logger, now: time.Now}
}

// Build loads the service groups and probes them. A configuration failure
// aborts the run; no partial report is returned.
func (r *Runner) Build(ctx context.Context) (domain.Report, error) {
	start := r.clock()

	groups, err := r.Source.Load()
	if err != nil {
		return domain.Report{}, fmt.Errorf("health: load service groups: %w", err)
	}

	sections := r.Aggregator.BuildSections(ctx, groups.Internal, groups.Company, groups.External)
	end := r.clock()
	return domain.Report{
		Timestamp:     end.UTC(),
		Internal:      sections[0],
		Company:       sections[1],
		External:      sections[2],
		ExecutionTime: end.Sub(start),
	}, nil
}

// Run builds the report and hands it to the dispatcher before returning it.
func (r *Runner) Run(ctx context.Context) (domain.Report, error) {
	log := r.Logger.With(zap.String("run_id", uuid.NewString()))

	rep, err := r.Build(ctx)
	if err != nil {
		log.Error("report_failed", zap.Error(err))
		return domain.Report{}, err
	}
	log.Info("report_built",
		zap.Int("targets", rep.Entries()),
		zap.Float64("execution_time_seconds", rep.Seconds()),
	)

	if r.Dispatcher != nil {
		r.Dispatcher.Dispatch(ctx, rep)
	}
	return rep, nil
}

func (r *Runner) clock() time.Time {
	if r.now == nil {
		return time.Now()
	}
	return r.now()
}
