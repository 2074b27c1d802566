package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/soul23/healthchecker/internal/domain"
)

// IncidentKeywords select the feed entries that concern the AI provider.
var IncidentKeywords = []string{"gemini", "vertex", "generative"}

// IncidentsChecker counts open incidents in a third-party feed instead of
// probing the target itself. When the feed is unavailable it falls back to a
// generic check of the target's own address.
type IncidentsChecker struct {
	Client   *Client
	Fallback *HTTPChecker
	FeedURL  string
	Keywords []string
	Timeout  time.Duration
}

func (c *IncidentsChecker) Check(ctx context.Context, target domain.Target) domain.Result {
	resp := c.Client.get(ctx, c.FeedURL, c.Timeout, nil, maxFeedSize)
	if resp.Err != nil {
		return domain.Result{Code: resp.Code, Status: failed("Error de conexión")}
	}
	if resp.Code != http.StatusOK {
		code := c.Fallback.Code(ctx, target.Address)
		return domain.Result{Code: code, Status: Classify(code)}
	}

	var feed []map[string]any
	if err := json.Unmarshal(resp.Body, &feed); err != nil {
		return domain.Result{Code: resp.Code, Status: failed("Error de conexión")}
	}
	active := c.countActive(feed)
	if active == 0 {
		return domain.Result{Code: resp.Code, Status: ok("Sin incidentes en Google AI")}
	}
	return domain.Result{Code: resp.Code, Status: warning(fmt.Sprintf("%d incidentes activos", active))}
}

func (c *IncidentsChecker) countActive(feed []map[string]any) int {
	n := 0
	for _, inc := range feed {
		if truthy(inc["end"]) {
			continue
		}
		name, _ := inc["service_name"].(string)
		name = strings.ToLower(name)
		for _, kw := range c.Keywords {
			if strings.Contains(name, kw) {
				n++
				break
			}
		}
	}
	return n
}
