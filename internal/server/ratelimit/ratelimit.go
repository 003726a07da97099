// Package ratelimit provides per-client, per-endpoint rate limiting on top of
// golang.org/x/time/rate token buckets.
package ratelimit

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// bucket pairs a token-bucket limiter with the parameters needed to report
// remaining capacity and reset time.
type bucket struct {
	limiter  *rate.Limiter
	capacity int
	perSec   float64
	lastSeen atomic.Int64 // unix nanos of the last request
}

// newBucket creates a full bucket with the given capacity and refill rate in tokens per second.
func newBucket(capacity int, refillRate float64) *bucket {
	return &bucket{
		limiter:  rate.NewLimiter(rate.Limit(refillRate), capacity),
		capacity: capacity,
		perSec:   refillRate,
	}
}

// allow consumes a token if one is available.
func (b *bucket) allow() bool {
	return b.limiter.Allow()
}

// status returns the whole tokens left, when the bucket will be full again,
// and how long until the next token is available.
func (b *bucket) status() (remaining int, resetTime time.Time, nextToken time.Duration) {
	now := time.Now()
	tokens := b.limiter.TokensAt(now)
	if tokens > 0 {
		remaining = int(tokens)
	}

	resetTime = now
	if missing := float64(b.capacity) - tokens; missing > 0 && b.perSec > 0 {
		resetTime = now.Add(time.Duration(missing / b.perSec * float64(time.Second)))
	}
	if tokens < 1 && b.perSec > 0 {
		nextToken = time.Duration((1 - tokens) / b.perSec * float64(time.Second))
	}
	return remaining, resetTime, nextToken
}

// Info describes the limit applied to one request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter keeps one token bucket per client and route.
type Limiter struct {
	config *Config

	mu      sync.Mutex
	buckets map[string]*bucket

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a limiter. A nil config allows 1000 requests a minute per
// client and route.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		config:  config,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.evictLoop(config.CleanupInterval)
	}
	return l
}

// Allow takes a token for clientID on the method and path of a request.
func (l *Limiter) Allow(clientID, method, path string) (bool, Info) {
	if !l.config.Enabled || l.config.Allow[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Deny[clientID] {
		return false, Info{}
	}

	rule, unlimited := MatchRule(l.config, method, path)
	if unlimited {
		return true, Info{Allowed: true}
	}
	if rule == nil {
		rule = &Rule{
			Route:  method + " " + path,
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}
	if rule.Limit <= 0 || rule.Window <= 0 {
		return true, Info{Allowed: true}
	}

	b := l.bucketFor(clientID+"|"+rule.Route, rule)
	b.lastSeen.Store(time.Now().UnixNano())

	allowed := b.allow()
	remaining, resetTime, nextToken := b.status()
	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: remaining,
		ResetTime: resetTime,
	}
	if !allowed {
		info.RetryAfter = nextToken
	}
	return allowed, info
}

func (l *Limiter) bucketFor(key string, rule *Rule) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}
	burst := rule.Burst
	if burst <= 0 {
		burst = rule.Limit
	}
	b := newBucket(burst, float64(rule.Limit)/rule.Window.Seconds())
	l.buckets[key] = b
	return b
}

func (l *Limiter) evictLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictIdle(time.Now().Add(-time.Hour))
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops buckets that have not seen a request since cutoff.
func (l *Limiter) evictIdle(cutoff time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for key, b := range l.buckets {
		if b.lastSeen.Load() < cutoff.UnixNano() {
			delete(l.buckets, key)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of live buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop ends background eviction. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
