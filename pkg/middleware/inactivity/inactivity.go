// Package inactivity tracks when the server last saw a request so the process
// can shut itself down after a quiet period.
package inactivity

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type Tracker struct {
	last atomic.Int64 // unix nanos, UTC
	now  func() time.Time

	skipMu sync.RWMutex
	skip   map[string]struct{}
}

func New() *Tracker { return newTracker(time.Now) }

func newTracker(now func() time.Time) *Tracker {
	t := &Tracker{now: now, skip: map[string]struct{}{"/metrics": {}}}
	t.Touch()
	return t
}

// Skip stops requests to these exact paths from counting as activity.
// "/metrics" is always skipped so scrapers cannot keep the process alive.
func (t *Tracker) Skip(paths ...string) {
	t.skipMu.Lock()
	defer t.skipMu.Unlock()
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			t.skip[p] = struct{}{}
		}
	}
}

func (t *Tracker) skipped(path string) bool {
	t.skipMu.RLock()
	defer t.skipMu.RUnlock()
	_, ok := t.skip[path]
	return ok
}

func (t *Tracker) Touch() { t.last.Store(t.now().UTC().UnixNano()) }

func (t *Tracker) LastSeen() time.Time { return time.Unix(0, t.last.Load()).UTC() }

func (t *Tracker) Idle() time.Duration { return t.now().Sub(t.LastSeen()) }

// Middleware touches the tracker before handing off to next, unless the
// path is skipped.
func (t *Tracker) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !t.skipped(r.URL.Path) {
				t.Touch()
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WaitForIdle blocks until the tracker has been idle for more than limit whole
// seconds, checking right away and then every interval. It returns ctx.Err()
// if ctx ends first.
func (t *Tracker) WaitForIdle(ctx context.Context, limit, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	limitSecs := int64(limit / time.Second)
	for {
		if int64(t.Idle()/time.Second) > limitSecs {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
