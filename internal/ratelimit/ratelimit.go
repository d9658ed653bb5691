// Package ratelimit implements a per-client fixed-window request limiter.
//
// Time is divided into non-overlapping windows of a configurable length;
// each client identifier gets at most MaxRequests inside the current
// window. State lives in a process-local Store with no persistence and no
// cross-instance sharing: every serving process counts independently.
//
// Expired records are reclaimed by a sweep that runs every
// CleanupInterval calls rather than on a wall-clock timer. Sweep frequency
// is therefore traffic-dependent: an idle process holds its records, a
// busy one reclaims promptly. This keeps the limiter free of background
// goroutines while still bounding memory growth from one-shot clients.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Default limits applied when the corresponding Config field is zero.
const (
	DefaultWindow          = 60 * time.Second
	DefaultMaxRequests     = 60
	DefaultCleanupInterval = 100
)

// UnknownClient is the sentinel identifier used when a request carries no
// identifying header or address. All such requests share one window.
const UnknownClient = "unknown"

// Config holds the tunables for a Store.
type Config struct {
	// Window is the fixed window length.
	Window time.Duration

	// MaxRequests is the cap per client per window.
	MaxRequests int

	// CleanupInterval is the number of Check calls (across all clients)
	// between sweeps of expired records.
	CleanupInterval int
}

// withDefaults returns cfg with zero fields replaced by defaults.
func (cfg Config) withDefaults() Config {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = DefaultMaxRequests
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}
	return cfg
}

// Decision is the outcome of a single Check call. It is a transient value,
// produced fresh per call and never stored.
type Decision struct {
	// Limited reports whether the request exceeded the window cap.
	Limited bool

	// Remaining is the number of requests left in the window, zero when
	// limited.
	Remaining int

	// ResetTime is the absolute time at which the client's window ends.
	ResetTime time.Time
}

// record is a client's counter for the current window. A record is valid
// only while now <= resetTime; once expired it is treated as absent.
type record struct {
	count     int
	resetTime time.Time
}

// Store owns the client-id -> record mapping for one process.
//
// Echo runs handlers on parallel goroutines, so the read-modify-write in
// Check and the sweep both hold the mutex. Construct one Store at process
// start and inject it into the middleware; tests build their own for
// isolation.
type Store struct {
	mu      sync.Mutex
	records map[string]*record

	// calls counts Check invocations across all clients and drives the
	// sweep cadence.
	calls int

	cfg Config
}

// NewStore creates an empty Store. Zero Config fields fall back to the
// package defaults.
func NewStore(cfg Config) *Store {
	return &Store{
		records: make(map[string]*record),
		cfg:     cfg.withDefaults(),
	}
}

// MaxRequests reports the configured per-window cap, for response headers.
func (s *Store) MaxRequests() int { return s.cfg.MaxRequests }

// Window reports the configured window length.
func (s *Store) Window() time.Duration { return s.cfg.Window }

// Check records one request from clientID at time now and decides whether
// it is over the limit.
//
// The function is total: any clientID (including the empty string) and any
// now produce a Decision. Every call advances the process-wide counter;
// every CleanupInterval-th call sweeps expired records before the lookup.
func (s *Store) Check(clientID string, now time.Time) Decision {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.calls%s.cfg.CleanupInterval == 0 {
		s.sweepLocked(now)
	}

	rec, ok := s.records[clientID]
	if !ok || now.After(rec.resetTime) {
		// First request from this client, or its window has rolled over.
		rec = &record{count: 1, resetTime: now.Add(s.cfg.Window)}
		s.records[clientID] = rec

		return Decision{
			Limited:   false,
			Remaining: s.cfg.MaxRequests - 1,
			ResetTime: rec.resetTime,
		}
	}

	rec.count++

	if rec.count > s.cfg.MaxRequests {
		return Decision{
			Limited:   true,
			Remaining: 0,
			ResetTime: rec.resetTime,
		}
	}

	return Decision{
		Limited:   false,
		Remaining: s.cfg.MaxRequests - rec.count,
		ResetTime: rec.resetTime,
	}
}

// sweepLocked deletes every record whose window has passed. Caller holds
// the mutex.
func (s *Store) sweepLocked(now time.Time) {
	for key, rec := range s.records {
		if now.After(rec.resetTime) {
			delete(s.records, key)
		}
	}
}

// Len reports the number of live records, expired ones included until the
// next sweep.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// ClientIP derives the limiter key for a request.
//
// Order mirrors the usual proxy setup: first entry of X-Forwarded-For,
// then X-Real-IP, then the connection's remote address. When none yield an
// address the UnknownClient sentinel is returned.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if ip := strings.TrimSpace(strings.Split(fwd, ",")[0]); ip != "" {
			return ip
		}
	}

	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	if r.RemoteAddr != "" {
		// RemoteAddr is host:port; fall back to the raw value when it
		// does not split (e.g. in tests).
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			return host
		}
		return r.RemoteAddr
	}

	return UnknownClient
}
