// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/advotec/advotec-api/internal/core"
	"github.com/advotec/advotec-api/internal/metrics"
)

type RateLimitConfig struct {
	// Name separates the buckets of limiters that share a Redis instance.
	Name    string
	Limit   redis_rate.Limit
	KeyFunc func(*http.Request) string
	// FailOpen serves from the in-process fallback when Redis errors.
	// Otherwise the request is refused with 503.
	FailOpen bool
	Metrics  *metrics.Metrics
}

// RateLimiter enforces Limit per key in Redis. With FailOpen set, an
// unreachable Redis degrades to an in-process token bucket per replica.
type RateLimiter struct {
	redis    *redis_rate.Limiter
	fallback *localBuckets
	cfg      RateLimitConfig
}

func NewRateLimiter(rdb *redis.Client, cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = KeyByIP
	}
	if cfg.Name == "" {
		cfg.Name = "global"
	}

	return &RateLimiter{
		redis:    redis_rate.NewLimiter(rdb),
		fallback: newLocalBuckets(),
		cfg:      cfg,
	}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := "ratelimit:" + rl.cfg.Name + ":" + rl.cfg.KeyFunc(r)

		res, err := rl.redis.Allow(r.Context(), key, rl.cfg.Limit)
		if err != nil {
			if !rl.cfg.FailOpen {
				core.JSON(w, http.StatusServiceUnavailable, core.ErrorResponse{
					Erro: "Serviço indisponível",
				})
				return
			}
			slog.WarnContext(r.Context(), "rate limiter using local fallback",
				"limiter", rl.cfg.Name,
				"error", err,
			)
			res = rl.fallback.allow(key, rl.cfg.Limit)
		}

		writeLimitHeaders(w, res)

		if res.Allowed == 0 {
			rl.cfg.Metrics.RateLimited(rl.cfg.Name)
			tooManyRequests(w, res.RetryAfter)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// KeyByIP uses the last X-Forwarded-For hop, which is the address the
// trusted proxy saw.
func KeyByIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		return strings.TrimSpace(hops[len(hops)-1])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// KeyByIPAndEndpoint buckets by client address and route, so a burst
// against /login does not spend the budget of /registrar.
func KeyByIPAndEndpoint(r *http.Request) string {
	return KeyByIP(r) + ":" + routeKey(r.URL.Path)
}

// routeKey collapses record ids so every /clientes/{id} shares a bucket.
func routeKey(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		if core.IsObjectID(s) {
			segments[i] = "{id}"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func writeLimitHeaders(w http.ResponseWriter, res *redis_rate.Result) {
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(max(res.Remaining, 0)))
	h.Set("X-RateLimit-Reset",
		strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))
}

func tooManyRequests(w http.ResponseWriter, retryAfter time.Duration) {
	secs := max(int(retryAfter.Round(time.Second)/time.Second), 1)

	w.Header().Set("Retry-After", strconv.Itoa(secs))
	core.JSON(w, http.StatusTooManyRequests, core.ErrorResponse{
		Erro: fmt.Sprintf("Muitas requisições. Tente novamente em %d segundos.", secs),
	})
}

// PerWindow allows rate requests per window with the given burst. A
// non-positive window falls back to one minute.
func PerWindow(rate, burst int, window time.Duration) redis_rate.Limit {
	if window <= 0 {
		window = time.Minute
	}
	return redis_rate.Limit{Rate: rate, Burst: burst, Period: window}
}

const (
	bucketSweepInterval = 5 * time.Minute
	bucketIdleTTL       = 10 * time.Minute
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// localBuckets is the in-process fallback. Buckets idle for longer than
// bucketIdleTTL are dropped from the request path, at most once per
// bucketSweepInterval, so no goroutine outlives the limiter.
type localBuckets struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newLocalBuckets() *localBuckets {
	return &localBuckets{
		buckets:   make(map[string]*bucket),
		lastSweep: time.Now(),
	}
}

// sweepLocked must be called with l.mu held.
func (l *localBuckets) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < bucketSweepInterval {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > bucketIdleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

func (l *localBuckets) allow(key string, limit redis_rate.Limit) *redis_rate.Result {
	return l.allowAt(key, limit, time.Now())
}

func (l *localBuckets) allowAt(
	key string,
	limit redis_rate.Limit,
	now time.Time,
) *redis_rate.Result {
	perToken := limit.Period / time.Duration(max(limit.Rate, 1))

	l.mu.Lock()
	l.sweepLocked(now)
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Every(perToken), limit.Burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	allowed := b.limiter.AllowN(now, 1)
	remaining := int(b.limiter.TokensAt(now))
	l.mu.Unlock()

	res := &redis_rate.Result{
		Limit:      limit,
		Remaining:  max(remaining, 0),
		RetryAfter: -1,
		ResetAfter: perToken,
	}
	if allowed {
		res.Allowed = 1
	} else {
		res.RetryAfter = perToken
	}
	return res
}
