package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/soul23/healthchecker/internal/domain"
)

// JSONStatusChecker reads a {"status": "..."} health document.
type JSONStatusChecker struct {
	Client  *Client
	Timeout time.Duration
}

func (j *JSONStatusChecker) Check(ctx context.Context, target domain.Target) domain.Result {
	resp := j.Client.get(ctx, target.Address, j.Timeout, nil, maxBodySize)
	if resp.Code == 0 {
		return domain.Result{Status: down("Error red")}
	}
	if resp.Code != http.StatusOK {
		return domain.Result{Code: resp.Code, Status: down(fmt.Sprintf("Código: %d", resp.Code))}
	}

	var status any
	if resp.Err == nil {
		doc, _ := decode(resp.Body)
		status = lookup(doc, "status")
	}
	switch {
	case status == "ok":
		return domain.Result{Code: resp.Code, Status: ok("API Health: ok")}
	case truthy(status):
		return domain.Result{Code: resp.Code, Status: warning(text(status))}
	default:
		return domain.Result{Code: resp.Code, Status: warning("No JSON")}
	}
}
