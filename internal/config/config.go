package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const DefaultIncidentsFeed = "https://status.cloud.google.com/incidents.json"

type Config struct {
	Addr      string // listen address, ":3001" unless ADDR or PORT say otherwise
	LogDir    string
	LogLevel  string
	SitesFile string // Service Group document (JSON or YAML)
	StaticDir string

	WebhookURLs    []string
	AllowedOrigins []string // empty allows every origin

	CheckInterval       time.Duration // 0 disables the scheduler
	MaxConcurrentChecks int
	ProbeTimeout        time.Duration
	VendorTimeout       time.Duration
	WebhookTimeout      time.Duration

	IncidentsFeedURL string
	PingTarget       string

	RunRPM   int // on-demand report runs per minute per client
	RunBurst int
	// TrustProxy keys the rate limiter on X-Real-IP / X-Forwarded-For
	// instead of the peer address.
	TrustProxy bool
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("PORT", "3001")
	v.SetDefault("LOG_DIR", "logs")
	v.SetDefault("LOG_LEVEL", LogLevelInfo)
	v.SetDefault("SITES_FILE", "data/sites.json")
	v.SetDefault("STATIC_DIR", ".")
	v.SetDefault("CHECK_INTERVAL", "0")
	v.SetDefault("MAX_CONCURRENT_CHECKS", 1)
	v.SetDefault("PROBE_TIMEOUT", "10s")
	v.SetDefault("VENDOR_TIMEOUT", "8s")
	v.SetDefault("WEBHOOK_TIMEOUT", "10s")
	v.SetDefault("INCIDENTS_FEED_URL", DefaultIncidentsFeed)
	v.SetDefault("PING_TARGET", "31.97.41.188")
	v.SetDefault("RUN_RPM", 30)
	v.SetDefault("RUN_BURST", 5)
	v.SetDefault("TRUST_PROXY", false)
	v.AutomaticEnv()
	return v
}

// Load reads the environment. Malformed durations and values failing
// validation are returned as errors; nothing is silently defaulted.
func Load() (Config, error) {
	v := newViper()

	addr := strings.TrimSpace(v.GetString("ADDR"))
	if addr == "" {
		addr = ":" + strings.TrimSpace(v.GetString("PORT"))
	}

	cfg := Config{
		Addr:                addr,
		LogDir:              v.GetString("LOG_DIR"),
		LogLevel:            strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		SitesFile:           v.GetString("SITES_FILE"),
		StaticDir:           v.GetString("STATIC_DIR"),
		WebhookURLs:         ParseList(v.GetString("WEBHOOK_URLS")),
		AllowedOrigins:      ParseList(v.GetString("ALLOWED_ORIGINS")),
		MaxConcurrentChecks: v.GetInt("MAX_CONCURRENT_CHECKS"),
		IncidentsFeedURL:    v.GetString("INCIDENTS_FEED_URL"),
		PingTarget:          v.GetString("PING_TARGET"),
		RunRPM:              v.GetInt("RUN_RPM"),
		RunBurst:            v.GetInt("RUN_BURST"),
		TrustProxy:          v.GetBool("TRUST_PROXY"),
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"CHECK_INTERVAL", &cfg.CheckInterval},
		{"PROBE_TIMEOUT", &cfg.ProbeTimeout},
		{"VENDOR_TIMEOUT", &cfg.VendorTimeout},
		{"WEBHOOK_TIMEOUT", &cfg.WebhookTimeout},
	}
	for _, d := range durations {
		raw := strings.TrimSpace(v.GetString(d.key))
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: must be a valid duration (e.g., 2s, 5m, 1h): %q", d.key, raw)
		}
		*d.dst = parsed
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// ParseList splits a comma separated value, trimming entries and dropping
// empty ones.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Addr, validation.Required, validation.By(validateHostPort)),
		validation.Field(&c.LogDir, validation.Required),
		validation.Field(&c.LogLevel,
			validation.Required,
			validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
		),
		validation.Field(&c.SitesFile, validation.Required),
		validation.Field(&c.StaticDir, validation.Required),
		validation.Field(&c.WebhookURLs, validation.Each(is.URL)),
		validation.Field(&c.CheckInterval, validation.Min(time.Duration(0))),
		validation.Field(&c.MaxConcurrentChecks, validation.Required, validation.Min(1)),
		validation.Field(&c.ProbeTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.VendorTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.WebhookTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.IncidentsFeedURL, validation.Required, is.URL),
		validation.Field(&c.RunRPM, validation.Required, validation.Min(1)),
		validation.Field(&c.RunBurst, validation.Required, validation.Min(1)),
	)
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}
	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}
	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}
	return nil
}
