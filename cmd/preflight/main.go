// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"

	"github.com/soul23/healthchecker/internal/config"
	"github.com/soul23/healthchecker/internal/sites"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.Load()
	if err != nil {
		fail(err.Error())
	}
	ok("ADDR=" + cfg.Addr)

	groups, err := sites.NewFile(cfg.SitesFile).Load()
	if err != nil {
		fail(fmt.Sprintf("SITES_FILE %s: %v", cfg.SitesFile, err))
	}
	if groups.Len() == 0 {
		warn("SITES_FILE has no targets; reports will be empty.")
	} else {
		ok(fmt.Sprintf("SITES_FILE %s: %d internos, %d sitios_empresa, %d externos",
			cfg.SitesFile, len(groups.Internal), len(groups.Company), len(groups.External)))
	}

	if len(cfg.WebhookURLs) == 0 {
		warn("WEBHOOK_URLS empty; reports will not be forwarded.")
	} else {
		ok(fmt.Sprintf("WEBHOOK_URLS: %d destination(s)", len(cfg.WebhookURLs)))
	}

	if cfg.CheckInterval == 0 {
		warn("CHECK_INTERVAL is 0; reports only run on demand.")
	} else {
		ok("CHECK_INTERVAL=" + cfg.CheckInterval.String())
	}

	if len(cfg.AllowedOrigins) == 0 {
		warn("ALLOWED_ORIGINS empty; CORS allows every origin.")
	}

	ok("preflight passed")
}
