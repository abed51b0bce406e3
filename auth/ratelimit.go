package auth

import (
	"sync"
	"time"
)

// Limiter defaults.
const (
	DefaultMaxAttempts = 5
	DefaultWindow      = 15 * time.Minute
	DefaultBlock       = 30 * time.Minute
	// DefaultMaxTrackedKeys bounds the attempt map. The source this design
	// follows had no cap, which is a resource-exhaustion gap under a flood
	// of distinct spoofed IPs; when the map is full the record with the
	// oldest window is evicted to admit the new key.
	DefaultMaxTrackedKeys = 10_000
)

// LimiterConfig tunes a LoginLimiter. Zero values take the defaults, and
// Block is floored to Window so a block always outlives the window that
// produced it.
type LimiterConfig struct {
	MaxAttempts    int
	Window         time.Duration
	Block          time.Duration
	MaxTrackedKeys int
}

// Status describes the limiter's view of one client key.
type Status struct {
	Blocked           bool
	RetryAfter        time.Duration
	RemainingAttempts int
}

type attemptRecord struct {
	attempts     int
	firstAttempt time.Time
	blockedUntil time.Time // zero until the threshold is reached
}

// LoginLimiter tracks failed login attempts per client key within a
// sliding window and escalates to a timed lockout at the threshold.
//
// State lives in process memory only: it resets on restart and does not
// coordinate across instances, which is acceptable for a single-admin,
// single-instance deployment. Records are evicted lazily on the next
// read or write for their key; there is no background sweep.
type LoginLimiter struct {
	mu      sync.Mutex
	cfg     LimiterConfig
	records map[string]*attemptRecord
	now     func() time.Time
}

// NewLoginLimiter constructs an isolated limiter. Each server process owns
// exactly one; tests construct their own instances.
func NewLoginLimiter(cfg LimiterConfig) *LoginLimiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.Block <= 0 {
		cfg.Block = DefaultBlock
	}
	if cfg.Block < cfg.Window {
		cfg.Block = cfg.Window
	}
	if cfg.MaxTrackedKeys <= 0 {
		cfg.MaxTrackedKeys = DefaultMaxTrackedKeys
	}
	return &LoginLimiter{
		cfg:     cfg,
		records: make(map[string]*attemptRecord),
		now:     time.Now,
	}
}

// record returns the live record for key, lazily evicting it when its
// block or window has elapsed. Callers hold l.mu.
func (l *LoginLimiter) record(key string, now time.Time) *attemptRecord {
	rec, ok := l.records[key]
	if !ok {
		return nil
	}
	if !rec.blockedUntil.IsZero() {
		if !rec.blockedUntil.After(now) {
			delete(l.records, key)
			return nil
		}
		return rec
	}
	if now.Sub(rec.firstAttempt) > l.cfg.Window {
		delete(l.records, key)
		return nil
	}
	return rec
}

// Status reports the state for key without registering an attempt.
func (l *LoginLimiter) Status(key string) Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec := l.record(key, now)
	if rec == nil {
		return Status{RemainingAttempts: l.cfg.MaxAttempts}
	}
	if !rec.blockedUntil.IsZero() {
		return Status{Blocked: true, RetryAfter: rec.blockedUntil.Sub(now)}
	}
	return Status{RemainingAttempts: maxInt(0, l.cfg.MaxAttempts-rec.attempts)}
}

// RegisterFailure records a failed login for key and returns the resulting
// state. Failures while blocked report the remaining block time without
// extending it.
func (l *LoginLimiter) RegisterFailure(key string) Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec := l.record(key, now)
	if rec == nil {
		l.admit(now)
		l.records[key] = &attemptRecord{attempts: 1, firstAttempt: now}
		return Status{RemainingAttempts: maxInt(0, l.cfg.MaxAttempts-1)}
	}

	if !rec.blockedUntil.IsZero() {
		return Status{Blocked: true, RetryAfter: rec.blockedUntil.Sub(now)}
	}

	rec.attempts++
	if rec.attempts >= l.cfg.MaxAttempts {
		rec.blockedUntil = now.Add(l.cfg.Block)
		return Status{Blocked: true, RetryAfter: l.cfg.Block}
	}
	return Status{RemainingAttempts: maxInt(0, l.cfg.MaxAttempts-rec.attempts)}
}

// RegisterSuccess clears all failure state for key, restoring the full
// attempt budget.
func (l *LoginLimiter) RegisterSuccess(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.records, key)
}

// admit makes room for a new key, evicting the record with the oldest
// window when the map is at capacity. Callers hold l.mu.
func (l *LoginLimiter) admit(now time.Time) {
	if len(l.records) < l.cfg.MaxTrackedKeys {
		return
	}
	var oldestKey string
	var oldest time.Time
	for key, rec := range l.records {
		if oldestKey == "" || rec.firstAttempt.Before(oldest) {
			oldestKey = key
			oldest = rec.firstAttempt
		}
	}
	if oldestKey != "" {
		delete(l.records, oldestKey)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
