package telegram

import (
	"crypto/subtle"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// guard holds the webhook checks that run before an update is decoded.
type guard struct {
	secret      string
	allowedIPs  []string
	rateLimiter *rateLimiter
}

func newGuard(cfg Config) *guard {
	g := &guard{
		secret:     cfg.Secret,
		allowedIPs: cfg.AllowedIPs,
	}
	if cfg.RateLimitPerMin > 0 {
		g.rateLimiter = newRateLimiter(cfg.RateLimitPerMin)
	}
	return g
}

// validateSecret compares the header set by the Bot API with the secret
// registered through setWebhook. An empty secret disables the check.
func (g *guard) validateSecret(token string) error {
	if g.secret == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(g.secret)) != 1 {
		return fmt.Errorf("invalid secret token")
	}
	return nil
}

// validateIPAddress checks the caller against the allow-list of addresses
// and CIDR ranges.
func (g *guard) validateIPAddress(r *http.Request) error {
	if len(g.allowedIPs) == 0 {
		return nil
	}

	ip := extractIP(r)
	parsed := net.ParseIP(ip)

	for _, allowed := range g.allowedIPs {
		if ip == allowed {
			return nil
		}
		if strings.Contains(allowed, "/") {
			_, ipNet, err := net.ParseCIDR(allowed)
			if err != nil {
				continue
			}
			if parsed != nil && ipNet.Contains(parsed) {
				return nil
			}
		}
	}

	return fmt.Errorf("IP %s not whitelisted", ip)
}

func (g *guard) checkRateLimit(key string) error {
	if g.rateLimiter == nil {
		return nil
	}
	return g.rateLimiter.Allow(key)
}

func extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// rateLimiter keeps one token bucket per chat; idle buckets expire.
type rateLimiter struct {
	mu       sync.Mutex // guards lookup-or-create in limiters
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			10000,
			nil,
			5*time.Minute,
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0),
		burst: max(1, requestsPerMin/10),
	}
}

func (rl *rateLimiter) Allow(key string) error {
	if !rl.limiter(key).Allow() {
		return fmt.Errorf("rate limit exceeded for %s", key)
	}
	return nil
}

func (rl *rateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	return limiter
}
