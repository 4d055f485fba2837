package news

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const rateLimitInterval = 1 * time.Second

// hostLimiter throttles requests per host. Each host gets its own token
// bucket that refills once per interval.
type hostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	interval time.Duration
}

func newHostLimiter(interval time.Duration) *hostLimiter {
	return &hostLimiter{
		limiters: make(map[string]*rate.Limiter),
		interval: interval,
	}
}

// wait blocks until a request to rawURL's host is allowed or ctx is done.
func (h *hostLimiter) wait(ctx context.Context, rawURL string) error {
	host := extractDomain(rawURL)
	if host == "" {
		return fmt.Errorf("missing host in URL %q", rawURL)
	}
	return h.limiterFor(host).Wait(ctx)
}

func (h *hostLimiter) limiterFor(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	l, ok := h.limiters[host]
	if !ok {
		l = rate.NewLimiter(rate.Every(h.interval), 1)
		h.limiters[host] = l
	}
	return l
}

// extractDomain parses a URL and returns its hostname, or "" if the URL
// cannot be parsed.
func extractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
