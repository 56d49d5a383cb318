// Package ratelimit throttles the expensive server routes (model calls and PDF
// printing) with one token bucket per client and rule.
package ratelimit

import (
	"sync"
	"time"
)

// bucket holds up to capacity tokens and refills at refillRate tokens per second
type bucket struct {
	capacity   float64
	refillRate float64
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newBucket(capacity int, refillRate float64, now time.Time) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now,
	}
}

func (b *bucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed*b.refillRate)
	}
	b.lastRefill = now
}

// take consumes one token when available. It returns the tokens left and, when
// denied, how long until the next token arrives.
func (b *bucket) take(now time.Time) (bool, int, time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(now)
	if b.tokens >= 1 {
		b.tokens--
		return true, int(b.tokens), 0
	}
	wait := time.Duration((1 - b.tokens) / b.refillRate * float64(time.Second))
	return false, 0, wait
}

// Decision describes the outcome of Allow
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter applies Config.Rules to incoming requests
type Limiter struct {
	config Config
	now    func() time.Time

	mu         sync.Mutex
	buckets    map[string]*bucket
	lastAccess map[string]time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a Limiter. A positive CleanupInterval starts a goroutine that
// drops idle buckets; call Stop to end it.
func NewLimiter(config Config) *Limiter {
	l := &Limiter{
		config:     config,
		now:        time.Now,
		buckets:    make(map[string]*bucket),
		lastAccess: make(map[string]time.Time),
		stop:       make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop(config.CleanupInterval)
	}
	return l
}

// Allow reports whether the request from clientID may proceed. Requests matching
// no rule, and every request while the limiter is disabled, are allowed.
func (l *Limiter) Allow(clientID, method, path string) Decision {
	if !l.config.Enabled || l.config.Exempt[clientID] {
		return Decision{Allowed: true}
	}
	rule, ok := Match(l.config.Rules, method, path)
	if !ok || rule.Limit <= 0 {
		return Decision{Allowed: true}
	}

	now := l.now()
	key := clientID + " " + rule.Method + " " + rule.Pattern
	allowed, remaining, wait := l.bucketFor(key, rule, now).take(now)
	return Decision{
		Allowed:    allowed,
		Limit:      rule.Limit,
		Remaining:  remaining,
		RetryAfter: wait,
	}
}

func (l *Limiter) bucketFor(key string, rule Rule, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastAccess[key] = now
	if b, ok := l.buckets[key]; ok {
		return b
	}
	burst := rule.Burst
	if burst <= 0 {
		burst = rule.Limit
	}
	b := newBucket(burst, float64(rule.Limit)/rule.Window.Seconds(), now)
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup(l.now().Add(-l.config.idleTTL()))
		case <-l.stop:
			return
		}
	}
}

// cleanup forgets buckets not touched since cutoff
func (l *Limiter) cleanup(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastAccess, key)
		}
	}
}

// Len returns the number of live buckets
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
