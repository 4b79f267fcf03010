package middleware

import (
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// getRateLimitConfig reads rate limit configuration from environment variables
func getRateLimitConfig() (enabled bool, requests int64, duration time.Duration) {
	// Check if rate limiting is enabled (default: true)
	enabled = os.Getenv("RATE_LIMIT_ENABLED") != "false"

	// Get number of requests (default: 100)
	requests = 100
	if reqStr := os.Getenv("RATE_LIMIT_REQUESTS"); reqStr != "" {
		if parsed, err := strconv.ParseInt(reqStr, 10, 64); err == nil {
			requests = parsed
		}
	}

	// Get duration (default: 1h)
	duration = 1 * time.Hour
	if durStr := os.Getenv("RATE_LIMIT_DURATION"); durStr != "" {
		if parsed, err := time.ParseDuration(durStr); err == nil {
			duration = parsed
		}
	}

	return
}

// getEffectiveRate returns the rate limit to use based on environment configuration
func getEffectiveRate(defaultRate limiter.Rate) limiter.Rate {
	enabled, requests, duration := getRateLimitConfig()

	if !enabled {
		// When rate limiting is disabled, return a very high limit (effectively unlimited)
		return limiter.Rate{
			Period: 1 * time.Second,
			Limit:  1000000,
		}
	}

	if requests > 0 && duration > 0 {
		return limiter.Rate{
			Period: duration,
			Limit:  requests,
		}
	}

	return defaultRate
}

// NewRateLimiter creates a new rate limiter middleware with in-memory store
func NewRateLimiter(rate limiter.Rate) gin.HandlerFunc {
	actualRate := getEffectiveRate(rate)
	store := memory.NewStore()
	instance := limiter.New(store, actualRate, limiter.WithTrustForwardHeader(true))
	return mgin.NewMiddleware(instance)
}
