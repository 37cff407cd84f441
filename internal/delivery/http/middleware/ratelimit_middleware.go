package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"dawaksahl-api/internal/infrastructure/metrics"
	"dawaksahl-api/pkg/response"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// DefaultProxyHops matches a single load balancer in front of the service
const DefaultProxyHops = 1

type visitor struct {
	limiter *rate.Limiter
	seen    time.Time
}

// RateLimiter is a token bucket per client: the authenticated user when known, the
// client IP otherwise. Register it after Authenticate to key by user.
type RateLimiter struct {
	scope     string
	limit     rate.Limit
	burst     int
	proxyHops int
	mu        sync.Mutex
	visitors  map[string]*visitor
	metrics   *metrics.Metrics
	log       *logrus.Logger
}

func NewRateLimiter(scope string, requestsPerMinute, burst int, m *metrics.Metrics, log *logrus.Logger) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		scope:     scope,
		limit:     rate.Limit(float64(requestsPerMinute) / 60),
		burst:     burst,
		proxyHops: DefaultProxyHops,
		visitors:  make(map[string]*visitor),
		metrics:   m,
		log:       log,
	}
}

// TrustProxyHops sets how many reverse proxies append to X-Forwarded-For. Zero keys by RemoteAddr only.
func (rl *RateLimiter) TrustProxyHops(hops int) *RateLimiter {
	if hops < 0 {
		hops = 0
	}
	rl.proxyHops = hops
	return rl
}

func (rl *RateLimiter) get(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.visitors[key]; ok {
		v.seen = now
		return v.limiter
	}
	l := rate.NewLimiter(rl.limit, rl.burst)
	rl.visitors[key] = &visitor{limiter: l, seen: now}
	return l
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := "ip:" + ClientIP(r, rl.proxyHops)
		if userID, ok := GetUserIDFromContext(r.Context()); ok {
			key = "user:" + userID.String()
		}

		reservation := rl.get(key, time.Now()).Reserve()
		if delay := reservation.Delay(); delay > 0 {
			reservation.Cancel()
			rl.metrics.RateLimited(rl.scope)
			rl.log.WithFields(logrus.Fields{
				"scope": rl.scope,
				"key":   key,
				"path":  r.URL.Path,
			}).Warn("Rate limit exceeded")

			retry := int(delay.Seconds()) + 1
			if retry > 60 || !reservation.OK() {
				retry = 60
			}
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			response.TooManyRequests(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// sweep drops limiters idle for longer than limiterIdleTTL
func (rl *RateLimiter) sweep(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for key, v := range rl.visitors {
		if now.Sub(v.seen) > limiterIdleTTL {
			delete(rl.visitors, key)
			removed++
		}
	}
	return removed
}

// Run sweeps idle limiters until ctx is done
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := rl.sweep(now); removed > 0 {
				rl.log.Debugf("Rate limiter %s dropped %d idle clients", rl.scope, removed)
			}
		}
	}
}

// ClientIP returns the address the outermost trusted proxy saw. Each proxy appends its peer
// to X-Forwarded-For, so only the last hops entries are trustworthy; anything to their left
// came from the client. A header shorter than hops did not pass the proxies.
func ClientIP(r *http.Request, hops int) string {
	if hops > 0 {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			parts := strings.Split(fwd, ",")
			if len(parts) >= hops {
				if ip := strings.TrimSpace(parts[len(parts)-hops]); ip != "" {
					return ip
				}
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
