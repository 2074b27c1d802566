package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	maxBodySize = 1 << 20  // 1MB
	maxFeedSize = 32 << 20 // the incidents feed is several MB
	drainSize   = 4 << 10  // unread tail consumed so the connection is reused
)

// Client issues GET requests with per-request timeouts applied through the
// context, so one client can serve strategies with different budgets.
type Client struct {
	HTTP *http.Client
}

func NewClient() *Client {
	return &Client{
		HTTP: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
}

type response struct {
	Code int
	Body []byte
	Err  error
}

func (c *Client) get(ctx context.Context, target string, timeout time.Duration, headers map[string]string, limit int64) response {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return response{Err: fmt.Errorf("build request: %w", err)}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return response{Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainSize))
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return response{Code: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	return response{Code: resp.StatusCode, Body: body}
}

// describe shortens transport errors for status texts.
func describe(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err.Error()
	}
	return err.Error()
}
