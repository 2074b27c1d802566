package httpapi

import (
	"sync"

	"github.com/soul23/healthchecker/internal/domain"
)

// Hub fans new reports out to live websocket subscribers. A subscriber that
// has not consumed the previous report only ever sees the newest one.
type Hub struct {
	mu   sync.Mutex
	subs map[chan domain.Report]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan domain.Report]struct{})}
}

// Subscribe returns a channel of reports and a func that releases it.
func (h *Hub) Subscribe() (<-chan domain.Report, func()) {
	ch := make(chan domain.Report, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
		})
	}
}

func (h *Hub) Publish(r domain.Report) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- r:
		default:
			// drop the stale report, keep the new one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- r:
			default:
			}
		}
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
