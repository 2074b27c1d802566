package httpapi

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/soul23/healthchecker/internal/domain"
)

const wsWriteTimeout = 5 * time.Second

// newUpgrader accepts same-host origins, plus the configured ones.
func newUpgrader(allowed []string) websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || slices.Contains(allowed, origin) {
				return true
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			host := strings.ToLower(strings.TrimSpace(r.Host))
			originHost := strings.ToLower(strings.TrimSpace(u.Host))
			return host == originHost
		},
	}
}

// handleWS pushes the latest report on connect and every new one after.
func (s *Server) handleWS(allowed []string) http.HandlerFunc {
	upgrader := newUpgrader(allowed)
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		reports, cancel := s.Hub.Subscribe()
		defer cancel()

		if rep, ok, err := s.Store.Latest(r.Context()); err == nil && ok {
			if err := writeReport(conn, rep); err != nil {
				return
			}
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case rep := <-reports:
				if err := writeReport(conn, rep); err != nil {
					s.Logger.Debug("ws_write_failed", zap.Error(err))
					return
				}
			case <-done:
				return
			}
		}
	}
}

func writeReport(conn *websocket.Conn, rep domain.Report) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(rep)
}
