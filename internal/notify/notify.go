package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/soul23/healthchecker/internal/domain"
)

// Notifier delivers an already serialized report.
type Notifier interface {
	Name() string
	Send(ctx context.Context, body []byte) error
}

// Dispatcher fans a report out to every notifier at once. Deliveries are
// best effort: failures are counted in one log line and otherwise dropped.
type Dispatcher struct {
	Notifiers []Notifier
	Logger    *zap.Logger
}

// NewDispatcher builds one Webhook per URL sharing a client.
func NewDispatcher(urls []string, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	client := &http.Client{}
	ns := make([]Notifier, 0, len(urls))
	for _, u := range urls {
		ns = append(ns, NewWebhook(u, client, timeout))
	}
	return &Dispatcher{Notifiers: ns, Logger: logger}
}

// Dispatch serializes r once and waits for every delivery to finish.
func (d *Dispatcher) Dispatch(ctx context.Context, r domain.Report) {
	if d == nil || len(d.Notifiers) == 0 {
		return
	}
	body, err := json.Marshal(r)
	if err != nil {
		d.Logger.Error("webhooks_encode_failed", zap.Error(err))
		return
	}

	var (
		mu   sync.Mutex
		errs error
		wg   conc.WaitGroup
	)
	for _, n := range d.Notifiers {
		wg.Go(func() {
			err := deliver(ctx, n, body)
			if err != nil {
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	d.Logger.Debug("webhooks_dispatched",
		zap.Int("targets", len(d.Notifiers)),
		zap.Int("failed", len(multierr.Errors(errs))),
	)
}

// deliver turns a panicking notifier into an ordinary failure.
func deliver(ctx context.Context, n Notifier, body []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier %s panicked: %v", n.Name(), r)
		}
	}()
	return n.Send(ctx, body)
}
