package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/soul23/healthchecker/internal/domain"
	"github.com/soul23/healthchecker/internal/repo"
)

// ReportRunner produces one complete report (probes plus webhooks).
type ReportRunner interface {
	Run(ctx context.Context) (domain.Report, error)
}

// Publisher receives every report that was stored.
type Publisher interface {
	Publish(r domain.Report)
}

// Scheduler runs report cycles on demand and, when Interval is set, on a
// ticker.
type Scheduler struct {
	Logger    *zap.Logger
	Runner    ReportRunner
	Store     repo.ReportStore
	Publisher Publisher // optional
	Interval  time.Duration
}

func NewScheduler(
	logger *zap.Logger,
	runner ReportRunner,
	store repo.ReportStore,
	pub Publisher,
	interval time.Duration,
) *Scheduler {
	if interval < 0 {
		interval = 0
	}
	return &Scheduler{
		Logger:    logger,
		Runner:    runner,
		Store:     store,
		Publisher: pub,
		Interval:  interval,
	}
}

// Run starts the loop. It does an immediate pass, then runs each tick.
// Stops when ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	if s.Interval == 0 {
		s.Logger.Info("scheduler_disabled")
		return
	}
	t := time.NewTicker(s.Interval)
	defer t.Stop()

	s.Logger.Info("scheduler_started", zap.Duration("interval", s.Interval))
	_, _ = s.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.Logger.Info("scheduler_stopped")
			return
		case <-t.C:
			_, _ = s.RunOnce(ctx)
		}
	}
}

// RunOnce produces a report, keeps it as the latest and publishes it.
// A configuration failure is returned and nothing is stored.
func (s *Scheduler) RunOnce(ctx context.Context) (domain.Report, error) {
	rep, err := s.Runner.Run(ctx)
	if err != nil {
		return domain.Report{}, err
	}
	if s.Store != nil {
		if err := s.Store.Put(ctx, rep); err != nil {
			s.Logger.Warn("scheduler_store_error", zap.Error(err))
		}
	}
	if s.Publisher != nil {
		s.Publisher.Publish(rep)
	}
	return rep, nil
}
