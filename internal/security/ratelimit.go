// Package security provides rate limiting functionality.
// The login endpoint is the only surface worth brute-forcing in a
// single-tenant onboarding app, so that is what gets a limiter.
package security

import (
	"sync"
	"time"
)

// RateLimiter implements token bucket algorithm for rate limiting.
// Thread-safe implementation using mutex for concurrent access.
type RateLimiter struct {
	// Map of identifier (IP or user ID) to rate limit state
	limiters map[string]*bucketState
	mu       sync.RWMutex

	// Configuration
	maxTokens  int           // Maximum tokens in bucket
	refillRate time.Duration // Time between token refills

	// Cleanup ticker to remove old entries
	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
}

// bucketState tracks the token bucket state for a single identifier.
type bucketState struct {
	tokens     int       // Current number of tokens
	lastRefill time.Time // Last time tokens were refilled
	mu         sync.Mutex
}

// NewRateLimiter creates a new rate limiter with specified configuration.
//
// Example:
//
//	// Allow 5 requests per minute
//	limiter := NewRateLimiter(5, 12*time.Second) // 60s / 5 requests = 12s per token
func NewRateLimiter(maxTokens int, refillRate time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limiters:    make(map[string]*bucketState),
		maxTokens:   maxTokens,
		refillRate:  refillRate,
		stopCleanup: make(chan struct{}),
	}

	// Start background cleanup to remove old entries
	rl.cleanupTicker = time.NewTicker(10 * time.Minute)
	go rl.cleanup()

	return rl
}

// Allow checks if a request from the given identifier should be allowed.
// Returns true if request is allowed, false if rate limit exceeded.
func (rl *RateLimiter) Allow(identifier string) bool {
	rl.mu.Lock()
	bucket, exists := rl.limiters[identifier]
	if !exists {
		// First request from this identifier - create new bucket
		bucket = &bucketState{
			tokens:     rl.maxTokens - 1, // Consume one token for this request
			lastRefill: time.Now(),
		}
		rl.limiters[identifier] = bucket
		rl.mu.Unlock()
		return true
	}
	rl.mu.Unlock()

	// Refill tokens based on time elapsed
	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	elapsed := time.Since(bucket.lastRefill)
	tokensToAdd := int(elapsed / rl.refillRate)

	if tokensToAdd > 0 {
		bucket.tokens += tokensToAdd
		if bucket.tokens > rl.maxTokens {
			bucket.tokens = rl.maxTokens
		}
		bucket.lastRefill = time.Now()
	}

	// Check if we have tokens available
	if bucket.tokens > 0 {
		bucket.tokens--
		return true
	}

	// Rate limit exceeded
	return false
}

// Reset removes the rate limit state for a given identifier.
// Useful for clearing lockouts or resetting limits.
func (rl *RateLimiter) Reset(identifier string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.limiters, identifier)
}

// cleanup periodically removes old, inactive entries to prevent memory leaks.
func (rl *RateLimiter) cleanup() {
	for {
		select {
		case <-rl.cleanupTicker.C:
			rl.mu.Lock()
			now := time.Now()
			for id, bucket := range rl.limiters {
				bucket.mu.Lock()
				// Remove entries inactive for more than 1 hour
				if now.Sub(bucket.lastRefill) > time.Hour {
					delete(rl.limiters, id)
				}
				bucket.mu.Unlock()
			}
			rl.mu.Unlock()
		case <-rl.stopCleanup:
			return
		}
	}
}

// Stop stops the cleanup goroutine and releases resources.
func (rl *RateLimiter) Stop() {
	rl.cleanupTicker.Stop()
	close(rl.stopCleanup)
}
