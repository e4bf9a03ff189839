package http

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/devdox-ai/devdox-api/internal/httputil"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTTL         = time.Hour
)

// rateLimiter holds one token bucket per client IP. A stale entry is dropped after
// limiterIdleTTL without requests.
type rateLimiter struct {
	limiters sync.Map // map[string]*rateLimiterEntry
	limit    rate.Limit
	burst    int
	logger   *slog.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// newRateLimiter allows requests per window for each client, with the given burst, and
// starts the cleanup goroutine. Stop must be called to release it.
func newRateLimiter(requests int, window time.Duration, burst int, logger *slog.Logger) *rateLimiter {
	ctx, cancel := context.WithCancel(context.Background())
	r := &rateLimiter{
		limit:  rate.Limit(float64(requests) / window.Seconds()),
		burst:  burst,
		logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go r.cleanupStale(ctx, limiterCleanupInterval)
	return r
}

// Middleware answers 429 with a Retry-After header once a client's bucket is empty.
func (r *rateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := r.getLimiter(clientIP)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(math.Ceil(reservation.Delay().Seconds()))
			reservation.Cancel()
			if retryAfter < 1 {
				retryAfter = 1
			}

			r.logger.Debug("rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			httputil.Error(
				c,
				http.StatusTooManyRequests,
				"rate_limit_exceeded",
				"Too many requests, please try again later.",
				nil,
			)
			return
		}

		c.Next()
	}
}

// Stop ends the cleanup goroutine and waits for it to exit.
func (r *rateLimiter) Stop() {
	r.cancel()
	<-r.done
}

func (r *rateLimiter) getLimiter(key string) *rate.Limiter {
	if val, ok := r.limiters.Load(key); ok {
		entry := val.(*rateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = time.Now()
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &rateLimiterEntry{
		limiter:    rate.NewLimiter(r.limit, r.burst),
		lastAccess: time.Now(),
	}
	actual, _ := r.limiters.LoadOrStore(key, entry)
	return actual.(*rateLimiterEntry).limiter
}

func (r *rateLimiter) cleanupStale(ctx context.Context, interval time.Duration) {
	defer close(r.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.evictBefore(time.Now().Add(-limiterIdleTTL))
		}
	}
}

func (r *rateLimiter) evictBefore(threshold time.Time) {
	r.limiters.Range(func(key, value any) bool {
		entry := value.(*rateLimiterEntry)
		entry.mu.Lock()
		stale := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if stale {
			r.limiters.Delete(key)
		}
		return true
	})
}
