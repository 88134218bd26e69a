package middleware

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/config"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/pkg/ctxutil"
)

const tooManyRequestsBody = `{"error":{"code":"RATE_LIMITED","message":"rate limit exceeded"}}` + "\n"

// RateLimiter keeps one token bucket per client. Clients are keyed by user id
// when the request carries one and by remote IP otherwise.
type RateLimiter struct {
	limit rate.Limit
	burst int
	idle  time.Duration
	clock clockwork.Clock

	mu      sync.Mutex
	clients map[string]*client
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter from cfg. Buckets untouched for
// cfg.CleanupInterval are dropped by Sweep.
func NewRateLimiter(cfg config.RateLimitConfig, clock clockwork.Clock) *RateLimiter {
	return &RateLimiter{
		limit:   rate.Limit(cfg.RPS),
		burst:   cfg.Burst,
		idle:    cfg.CleanupInterval,
		clock:   clock,
		clients: make(map[string]*client),
	}
}

// Middleware rejects requests over the client's budget with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := rl.clock.Now()
		res := rl.limiter(clientKey(r), now).ReserveN(now, 1)
		if !res.OK() {
			rl.reject(w, time.Second)
			return
		}
		if delay := res.DelayFrom(now); delay > 0 {
			res.CancelAt(now)
			rl.reject(w, delay)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Sweep drops buckets idle for longer than the cleanup interval and returns
// how many were removed.
func (rl *RateLimiter) Sweep() int {
	cutoff := rl.clock.Now().Add(-rl.idle)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for key, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, key)
			removed++
		}
	}
	return removed
}

// Run sweeps every cleanup interval until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context) error {
	ticker := rl.clock.NewTicker(rl.idle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			rl.Sweep()
		}
	}
}

func (rl *RateLimiter) limiter(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter
}

func (rl *RateLimiter) reject(w http.ResponseWriter, wait time.Duration) {
	secs := int(math.Ceil(wait.Seconds()))
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(tooManyRequestsBody))
}

func clientKey(r *http.Request) string {
	if userID, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		return "user:" + userID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
