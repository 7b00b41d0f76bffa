package middleware

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

// RateLimiter manages per-client rate limiting for the API surface
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

// Allow checks whether a request from the given client should proceed
func (rl *RateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	limiter, exists := rl.limiters[clientIP]
	if !exists {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[clientIP] = limiter
	}
	rl.mu.Unlock()

	return limiter.Allow()
}

// RateLimit returns a rate limiting middleware keyed by client IP
func RateLimit(cfg *viper.Viper) echo.MiddlewareFunc {
	if !cfg.GetBool("server.rate_limit.enabled") {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	perSecond := cfg.GetFloat64("server.rate_limit.per_second")
	if perSecond <= 0 {
		perSecond = 20
	}
	burst := cfg.GetInt("server.rate_limit.burst")
	if burst <= 0 {
		burst = 40
	}

	rl := NewRateLimiter(perSecond, burst)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.Allow(c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
