package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"
)

const DefaultTimeout = 10 * time.Second

// Webhook POSTs a JSON body to one URL.
type Webhook struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
}

func NewWebhook(url string, client *http.Client, timeout time.Duration) *Webhook {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Webhook{URL: url, Client: client, Timeout: timeout}
}

func (w *Webhook) Name() string { return w.URL }

func (w *Webhook) Send(ctx context.Context, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook %s: %w", w.URL, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook %s: %w", w.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("webhook %s: status %d", w.URL, resp.StatusCode)
	}
	return nil
}
