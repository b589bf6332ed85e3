// Package ratex provides a keyed token-bucket limiter, used to throttle
// repeated login attempts against the same account.
package ratex

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config defines the limiting parameters for a KeyedLimiter.
type Config struct {
	// AttemptsPerWindow is the number of attempts allowed in the time window.
	AttemptsPerWindow int
	// Window is the time window the attempts are spread over.
	Window time.Duration
	// Burst allows temporary bursts above the steady rate. Zero means
	// AttemptsPerWindow.
	Burst int
}

// KeyedLimiter tracks an independent token bucket per key. Keys are pruned
// once their bucket refills, so idle keys do not accumulate forever.
type KeyedLimiter struct {
	limiters sync.Map // map[string]*rate.Limiter
	rate     rate.Limit
	burst    int

	mu          sync.Mutex
	lastCleanup time.Time
}

// New builds a KeyedLimiter from cfg.
func New(cfg Config) *KeyedLimiter {
	burst := cfg.Burst
	if burst <= 0 {
		burst = cfg.AttemptsPerWindow
	}
	return &KeyedLimiter{
		rate:        rate.Limit(float64(cfg.AttemptsPerWindow) / cfg.Window.Seconds()),
		burst:       burst,
		lastCleanup: time.Now(),
	}
}

// Allow reports whether one attempt for key may proceed now.
func (kl *KeyedLimiter) Allow(key string) bool {
	return kl.limiterFor(key).Allow()
}

func (kl *KeyedLimiter) limiterFor(key string) *rate.Limiter {
	if limiter, ok := kl.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(kl.rate, kl.burst)
	actual, _ := kl.limiters.LoadOrStore(key, limiter)

	kl.maybeCleanup()

	return actual.(*rate.Limiter)
}

// maybeCleanup drops limiters whose buckets are full again. A full bucket
// means the key has been idle for at least a whole window.
func (kl *KeyedLimiter) maybeCleanup() {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	if time.Since(kl.lastCleanup) < 5*time.Minute {
		return
	}
	kl.lastCleanup = time.Now()

	kl.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(kl.burst) {
			kl.limiters.Delete(key)
		}
		return true
	})
}
