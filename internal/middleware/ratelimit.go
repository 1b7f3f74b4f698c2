package middleware

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"connectrpc.com/connect"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/mmynk/vibewalk/internal/session"
)

// ErrRateLimited is returned when a caller exceeds its request budget.
var ErrRateLimited = errors.New("too many requests, please slow down")

// RateLimiter limits selected procedures per caller. Callers are identified
// by user ID when logged in, else by a session they already held, else by
// peer host. A session issued by the call itself is not an identity.
type RateLimiter struct {
	mu         sync.Mutex
	limiters   *cache.Cache
	rate       rate.Limit
	burst      int
	procedures map[string]bool
}

// NewRateLimiter allows each caller perMinute calls with the given burst
// across the listed procedures. Idle limiters are forgotten after an hour.
func NewRateLimiter(perMinute float64, burst int, procedures ...string) *RateLimiter {
	rl := &RateLimiter{
		limiters:   cache.New(time.Hour, 10*time.Minute),
		rate:       rate.Limit(perMinute / 60),
		burst:      burst,
		procedures: make(map[string]bool, len(procedures)),
	}
	for _, p := range procedures {
		rl.procedures[p] = true
	}
	return rl
}

// getLimiter returns the limiter for key, creating it on first use.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.limiters.Get(key); ok {
		rl.limiters.SetDefault(key, v)
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters.SetDefault(key, limiter)
	return limiter
}

func callerKey(ctx context.Context, req connect.AnyRequest) string {
	if userID := GetUserID(ctx); userID != "" {
		return "user:" + userID
	}
	if id, _, ok := session.FromContext(ctx); ok && !session.Issued(ctx) {
		return "session:" + id
	}
	return "peer:" + peerHost(req.Peer().Addr)
}

// peerHost drops the port so one client maps to one key across connections.
// Addresses already rewritten by RealIP carry no port.
func peerHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// Interceptor returns the Connect interceptor enforcing the limits.
func (rl *RateLimiter) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if !rl.procedures[req.Spec().Procedure] {
				return next(ctx, req)
			}
			if !rl.getLimiter(callerKey(ctx, req)).Allow() {
				return nil, connect.NewError(connect.CodeResourceExhausted, ErrRateLimited)
			}
			return next(ctx, req)
		}
	}
}
