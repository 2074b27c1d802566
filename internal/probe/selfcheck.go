package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/soul23/healthchecker/internal/domain"
)

// SelfChecker reads our own /health document and reports whether the VPS
// ping inside it succeeded.
type SelfChecker struct {
	Client  *Client
	Timeout time.Duration
}

func (s *SelfChecker) Check(ctx context.Context, target domain.Target) domain.Result {
	resp := s.Client.get(ctx, target.Address, s.Timeout, nil, maxBodySize)
	if resp.Err != nil {
		return domain.Result{Code: resp.Code, Status: failed(fmt.Sprintf("Error Conexión (%s)", describe(resp.Err)))}
	}
	if resp.Code != http.StatusOK {
		return domain.Result{Code: resp.Code, Status: down(fmt.Sprintf("Endpoint status: %d", resp.Code))}
	}

	// an undecodable body counts as not alive
	doc, _ := decode(resp.Body)
	if truthy(lookup(doc, "checks", "vps_ping", "alive")) {
		return domain.Result{Code: resp.Code, Status: ok("VPS Reachable")}
	}
	return domain.Result{Code: resp.Code, Status: down("VPS reporta 'alive': false")}
}
