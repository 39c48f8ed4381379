package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/JonnyWalker81/apitemplate/internal/apierror"
	"github.com/JonnyWalker81/apitemplate/internal/logger"
	"github.com/gin-gonic/gin"
)

// RateLimiter counts requests per client IP over a fixed window.
type RateLimiter struct {
	requests map[string]*clientInfo
	mu       sync.Mutex
	rate     int
	window   time.Duration
	name     string

	stop     chan struct{}
	stopOnce sync.Once
}

type clientInfo struct {
	count       int
	windowStart time.Time
	lastSeen    time.Time
}

// NewRateLimiter creates a limiter allowing rate requests per window for
// each client. Call Stop to release the cleanup goroutine.
func NewRateLimiter(rate int, window time.Duration, name string) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string]*clientInfo),
		rate:     rate,
		window:   window,
		name:     name,
		stop:     make(chan struct{}),
	}

	go rl.cleanup()

	logger.Debug("rate limiter initialized",
		logger.String("name", name),
		logger.Int("rate", rate),
		logger.Duration("window", window),
	)

	return rl
}

// Stop terminates the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			cleaned := 0
			for ip, info := range rl.requests {
				if now.Sub(info.lastSeen) > rl.window*2 {
					delete(rl.requests, ip)
					cleaned++
				}
			}
			remaining := len(rl.requests)
			rl.mu.Unlock()

			if cleaned > 0 {
				logger.Debug("rate limiter cleanup completed",
					logger.String("name", rl.name),
					logger.Int("cleaned", cleaned),
					logger.Int("remaining", remaining),
				)
			}
		}
	}
}

// isAllowed records a request from ip and reports whether it is within the
// limit, along with the count in the current window.
func (rl *RateLimiter) isAllowed(ip string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	info, ok := rl.requests[ip]
	if !ok || now.Sub(info.windowStart) >= rl.window {
		rl.requests[ip] = &clientInfo{count: 1, windowStart: now, lastSeen: now}
		return 1 <= rl.rate, 1
	}

	info.count++
	info.lastSeen = now
	return info.count <= rl.rate, info.count
}

func (rl *RateLimiter) retryAfter() int {
	return max(1, int(math.Ceil(rl.window.Seconds())))
}

// RateLimit rejects clients exceeding limiter with a 429 problem response.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		allowed, count := limiter.isAllowed(ip)
		if allowed {
			c.Next()
			return
		}

		logger.Ctx(c.Request.Context()).Warn("rate limit exceeded",
			logger.String("limiter", limiter.name),
			logger.String("client_ip", ip),
			logger.Int("request_count", count),
			logger.Int("limit", limiter.rate),
			logger.Duration("window", limiter.window),
		)

		retryAfter := limiter.retryAfter()
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.rate))
		c.Header("X-RateLimit-Remaining", "0")
		apierror.WriteProblem(c, apierror.NewRateLimitError(c.Request.URL.Path, retryAfter))
		c.Abort()
	}
}
