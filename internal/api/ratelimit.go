package api

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// A full reset discards the running game and regenerates the terrain map,
// which is by far the most expensive command the API accepts. resetGuard
// caps how often any single caller may trigger one.
type resetGuard struct {
	mu     sync.Mutex
	recent map[string][]time.Time // reset timestamps per caller, oldest first
	limit  int
	window time.Duration
	now    func() time.Time
}

func newResetGuard(limit int, window time.Duration) *resetGuard {
	return &resetGuard{
		recent: make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// allow records a reset attempt for the caller and reports whether it still
// fits inside the caller's quota for the current window.
func (rg *resetGuard) allow(caller string) bool {
	rg.mu.Lock()
	defer rg.mu.Unlock()

	now := rg.now()
	kept := rg.recent[caller][:0]
	for _, ts := range rg.recent[caller] {
		if now.Sub(ts) < rg.window {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= rg.limit {
		rg.recent[caller] = kept
		return false
	}
	rg.recent[caller] = append(kept, now)
	if len(rg.recent) > 1024 {
		rg.sweepLocked(now)
	}
	return true
}

// retryAfter returns the seconds until the caller's oldest recorded reset
// ages out of the window.
func (rg *resetGuard) retryAfter(caller string) int {
	rg.mu.Lock()
	defer rg.mu.Unlock()

	ts := rg.recent[caller]
	if len(ts) == 0 {
		return 0
	}
	wait := rg.window - rg.now().Sub(ts[0])
	if wait <= 0 {
		return 0
	}
	return int(wait.Seconds()) + 1
}

func (rg *resetGuard) sweepLocked(now time.Time) {
	for caller, ts := range rg.recent {
		if len(ts) == 0 || now.Sub(ts[len(ts)-1]) >= rg.window {
			delete(rg.recent, caller)
		}
	}
}

// wrap gates next behind the guard, answering 429 with a Retry-After hint
// when the caller has reset too often.
func (rg *resetGuard) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := callerAddr(r)
		if !rg.allow(caller) {
			w.Header().Set("Retry-After", strconv.Itoa(rg.retryAfter(caller)))
			http.Error(w, "too many resets", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// callerAddr identifies the requesting client, preferring the first hop in
// X-Forwarded-For when a proxy sits in front.
func callerAddr(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
