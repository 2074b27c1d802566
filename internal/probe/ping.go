package probe

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// Pinger answers whether a host replies to one echo request.
type Pinger interface {
	Ping(ctx context.Context, host string) bool
}

// ExecPinger shells out to the system ping binary (ping -c 1 -W 1).
type ExecPinger struct {
	Binary  string
	Timeout time.Duration
}

func NewExecPinger() *ExecPinger {
	return &ExecPinger{Binary: "ping", Timeout: 2 * time.Second}
}

func (p *ExecPinger) Ping(ctx context.Context, host string) bool {
	host = strings.TrimSpace(host)
	if host == "" || strings.HasPrefix(host, "-") {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()
	return exec.CommandContext(ctx, p.Binary, "-c", "1", "-W", "1", host).Run() == nil
}
