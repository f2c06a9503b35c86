package llm

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// newRequestLimiter builds a rate limiter from a minimum-interval duration
// string such as "4s". An empty interval disables pacing.
func newRequestLimiter(interval string) (*rate.Limiter, error) {
	if interval == "" {
		return rate.NewLimiter(rate.Inf, 1), nil
	}

	d, err := time.ParseDuration(interval)
	if err != nil {
		return nil, fmt.Errorf("invalid interval: %w", err)
	}
	if d <= 0 {
		return rate.NewLimiter(rate.Inf, 1), nil
	}

	return rate.NewLimiter(rate.Every(d), 1), nil
}

// IsRateLimitError checks if an error is a rate limit (429) or quota error
// from a provider API.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "RESOURCE_EXHAUSTED") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "quota")
}
