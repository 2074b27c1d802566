package probe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/soul23/healthchecker/internal/domain"
)

const summaryPath = "/api/v2/summary.json"

// StatusPageChecker reads a vendor's Statuspage summary and maps
// status.indicator onto a level.
type StatusPageChecker struct {
	Client  *Client
	Timeout time.Duration
}

func (s *StatusPageChecker) Check(ctx context.Context, target domain.Target) domain.Result {
	url := strings.TrimSuffix(target.Address, "/") + summaryPath
	resp := s.Client.get(ctx, url, s.Timeout, nil, maxBodySize)
	if resp.Err != nil {
		return domain.Result{Code: resp.Code, Status: failed("Error verificación")}
	}
	if resp.Code != http.StatusOK {
		return domain.Result{Code: resp.Code, Status: down(fmt.Sprint(resp.Code))}
	}

	doc, err := decode(resp.Body)
	if err != nil {
		return domain.Result{Code: resp.Code, Status: failed("Error verificación")}
	}
	indicator := lookup(doc, "status", "indicator")
	description := "sin descripción"
	if d := lookup(doc, "status", "description"); d != nil {
		description = text(d)
	}
	if indicator == "none" {
		return domain.Result{Code: resp.Code, Status: ok(description)}
	}
	return domain.Result{Code: resp.Code, Status: warning(description)}
}
