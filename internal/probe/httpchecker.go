package probe

import (
	"context"
	"time"

	"github.com/soul23/healthchecker/internal/domain"
)

// HTTPChecker is the generic probe: one GET, the raw status code is the result.
type HTTPChecker struct {
	Client  *Client
	Timeout time.Duration
}

func NewHTTPChecker(c *Client, timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPChecker{Client: c, Timeout: timeout}
}

// Code returns the HTTP status code of target, or 0 on any transport error.
func (h *HTTPChecker) Code(ctx context.Context, target string) int {
	// body is not needed; get drains it so the connection stays pooled
	resp := h.Client.get(ctx, target, h.Timeout, map[string]string{"User-Agent": UserAgent}, 0)
	return resp.Code
}

func (h *HTTPChecker) Check(ctx context.Context, target domain.Target) domain.Result {
	code := h.Code(ctx, target.Address)
	return domain.Result{Code: code, Status: Classify(code), Numeric: true}
}
