package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/soul23/healthchecker/internal/domain"
	apimw "github.com/soul23/healthchecker/internal/httpapi/middleware"
	"github.com/soul23/healthchecker/internal/probe"
	"github.com/soul23/healthchecker/internal/repo"
)

const (
	appStoreURL     = "https://apps.apple.com/es/app/telegram-messenger/id686449807"
	playStoreURL    = "https://play.google.com/store/apps/details?id=org.telegram.messenger&pcampaignid=web_share"
	telegramAppsURL = "https://telegram.org/apps"
)

// Reporter runs one full check cycle and records its report.
type Reporter interface {
	RunOnce(ctx context.Context) (domain.Report, error)
}

type Server struct {
	Logger     *zap.Logger
	Reports    Reporter
	Store      repo.ReportStore
	Hub        *Hub
	Pinger     probe.Pinger
	PingTarget string
	StaticDir  string
	// PrivateDirs are never served as static files even when they sit
	// under StaticDir (the log directory, for one).
	PrivateDirs []string

	now func() time.Time
}

func NewServer(l *zap.Logger, reports Reporter, store repo.ReportStore, hub *Hub, pinger probe.Pinger, pingTarget, staticDir string) *Server {
	if hub == nil {
		hub = NewHub()
	}
	return &Server{
		Logger:     l,
		Reports:    reports,
		Store:      store,
		Hub:        hub,
		Pinger:     pinger,
		PingTarget: pingTarget,
		StaticDir:  staticDir,
		now:        time.Now,
	}
}

// RouterOptions tunes CORS and the on-demand run limiter.
type RouterOptions struct {
	AllowedOrigins []string // empty allows every origin
	RunRPM         int
	RunBurst       int
	// TrustProxy takes the client address from X-Real-IP / X-Forwarded-For.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxy bool
}

func (s *Server) Router(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Recoverer)
	r.Use(apimw.RequestLog(s.Logger))
	if len(opts.AllowedOrigins) == 0 {
		r.Use(cors.AllowAll().Handler)
	} else {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/health", s.handleHealth)
	r.Get("/telegram", handleTelegram)
	r.Get("/healthchecker", s.handleScript)

	r.Route("/api/healthcheck", func(r chi.Router) {
		r.With(apimw.RateLimit(opts.RunRPM, opts.RunBurst)).Get("/", s.handleRun)
		r.Get("/latest", s.handleLatest)
	})
	r.Get("/ws/healthcheck", s.handleWS(opts.AllowedOrigins))

	r.Get("/*", s.handleStatic)
	return r
}

type pingCheck struct {
	Target string `json:"target"`
	Alive  bool   `json:"alive"`
	Output string `json:"output"`
}

type healthBody struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Checks    struct {
		VPSPing pingCheck `json:"vps_ping"`
	} `json:"checks"`
}

// handleHealth always answers 200; reachability is carried in the body.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	alive := s.Pinger != nil && s.Pinger.Ping(r.Context(), s.PingTarget)
	out := "VPS Unreachable"
	if alive {
		out = "VPS Reachable"
	}
	var body healthBody
	body.Status = "ok"
	body.Timestamp = s.now().UTC().Format(domain.TimestampLayout)
	body.Checks.VPSPing = pingCheck{Target: s.PingTarget, Alive: alive, Output: out}
	writeJSON(w, http.StatusOK, body)
}

func handleTelegram(w http.ResponseWriter, r *http.Request) {
	ua := strings.ToLower(r.UserAgent())
	platform := strings.ToLower(r.URL.Query().Get("platform"))

	isIOS := platform == "ios" ||
		strings.Contains(ua, "iphone") ||
		strings.Contains(ua, "ipad") ||
		strings.Contains(ua, "ipod") ||
		strings.Contains(ua, "ios")
	isAndroid := platform == "android" || strings.Contains(ua, "android")

	switch {
	case isIOS:
		http.Redirect(w, r, appStoreURL, http.StatusFound)
	case isAndroid:
		http.Redirect(w, r, playStoreURL, http.StatusFound)
	default:
		http.Redirect(w, r, telegramAppsURL, http.StatusFound)
	}
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	b, err := os.ReadFile(filepath.Join(s.StaticDir, "scripts", "health_checker"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(b)
}

type runError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	// a client hanging up must not turn every probe into a timeout
	rep, err := s.Reports.RunOnce(context.WithoutCancel(r.Context()))
	if err != nil {
		s.Logger.Error("healthcheck_failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, runError{Error: "Health checker failed", Details: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	rep, ok, err := s.Store.Latest(r.Context())
	if err != nil {
		http.Error(w, "latest error", http.StatusInternalServerError)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no report yet"})
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// handleStatic serves files under StaticDir and falls back to index.html.
// Dotfiles and private directories fall back as if they did not exist.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	clean := path.Clean("/" + r.URL.Path)
	name := filepath.Join(s.StaticDir, filepath.FromSlash(clean))
	if !hidden(clean) && !s.private(name) {
		if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
			http.ServeFile(w, r, name)
			return
		}
	}
	index := filepath.Join(s.StaticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, index)
}

// hidden reports whether any segment of a cleaned URL path is a dotfile.
func hidden(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

func (s *Server) private(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return true
	}
	for _, dir := range s.PrivateDirs {
		d, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(d, abs)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
