package config_test

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/soul23/healthchecker/internal/config"
)

var envKeys = []string{
	"ADDR", "PORT", "LOG_DIR", "LOG_LEVEL", "SITES_FILE", "STATIC_DIR",
	"WEBHOOK_URLS", "ALLOWED_ORIGINS", "CHECK_INTERVAL", "MAX_CONCURRENT_CHECKS",
	"PROBE_TIMEOUT", "VENDOR_TIMEOUT", "WEBHOOK_TIMEOUT", "INCIDENTS_FEED_URL",
	"PING_TARGET", "RUN_RPM", "RUN_BURST", "TRUST_PROXY",
}

var _ = Describe("Config", func() {
	BeforeEach(func() {
		for _, k := range envKeys {
			os.Unsetenv(k)
		}
	})

	AfterEach(func() {
		for _, k := range envKeys {
			os.Unsetenv(k)
		}
	})

	Describe("Load", func() {
		Context("with no environment", func() {
			It("should use defaults", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Addr).To(Equal(":3001"))
				Expect(cfg.LogDir).To(Equal("logs"))
				Expect(cfg.LogLevel).To(Equal(config.LogLevelInfo))
				Expect(cfg.SitesFile).To(Equal("data/sites.json"))
				Expect(cfg.WebhookURLs).To(BeEmpty())
				Expect(cfg.CheckInterval).To(BeZero())
				Expect(cfg.MaxConcurrentChecks).To(Equal(1))
				Expect(cfg.ProbeTimeout).To(Equal(10 * time.Second))
				Expect(cfg.VendorTimeout).To(Equal(8 * time.Second))
				Expect(cfg.WebhookTimeout).To(Equal(10 * time.Second))
				Expect(cfg.IncidentsFeedURL).To(Equal(config.DefaultIncidentsFeed))
				Expect(cfg.RunRPM).To(Equal(30))
				Expect(cfg.RunBurst).To(Equal(5))
				Expect(cfg.TrustProxy).To(BeFalse())
			})
		})

		Context("with environment variables", func() {
			It("should derive the address from PORT", func() {
				os.Setenv("PORT", "8080")
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Addr).To(Equal(":8080"))
			})

			It("should prefer ADDR over PORT", func() {
				os.Setenv("PORT", "8080")
				os.Setenv("ADDR", "127.0.0.1:9090")
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Addr).To(Equal("127.0.0.1:9090"))
			})

			It("should split the webhook list", func() {
				os.Setenv("WEBHOOK_URLS", " https://a.example/hook, ,https://b.example/hook ")
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.WebhookURLs).To(Equal([]string{"https://a.example/hook", "https://b.example/hook"}))
			})

			It("should enable proxy headers only when asked", func() {
				os.Setenv("TRUST_PROXY", "true")
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.TrustProxy).To(BeTrue())
			})

			It("should parse durations and pool size", func() {
				os.Setenv("CHECK_INTERVAL", "5m")
				os.Setenv("PROBE_TIMEOUT", "3s")
				os.Setenv("MAX_CONCURRENT_CHECKS", "4")
				os.Setenv("LOG_LEVEL", "DEBUG")
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.CheckInterval).To(Equal(5 * time.Minute))
				Expect(cfg.ProbeTimeout).To(Equal(3 * time.Second))
				Expect(cfg.MaxConcurrentChecks).To(Equal(4))
				Expect(cfg.LogLevel).To(Equal(config.LogLevelDebug))
			})
		})

		Context("with invalid values", func() {
			It("should reject a malformed duration", func() {
				os.Setenv("PROBE_TIMEOUT", "soon")
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("PROBE_TIMEOUT"))
			})

			It("should reject an unknown log level", func() {
				os.Setenv("LOG_LEVEL", "chatty")
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})

			It("should reject a zero pool size", func() {
				os.Setenv("MAX_CONCURRENT_CHECKS", "0")
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})

			It("should reject a malformed webhook URL", func() {
				os.Setenv("WEBHOOK_URLS", "not a url")
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})

			It("should reject an address without a port", func() {
				os.Setenv("ADDR", "localhost")
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("ParseList", func() {
		It("should drop empty entries", func() {
			Expect(config.ParseList("")).To(BeEmpty())
			Expect(config.ParseList(" , ,")).To(BeEmpty())
			Expect(config.ParseList("a, b ,c")).To(Equal([]string{"a", "b", "c"}))
		})
	})
})
