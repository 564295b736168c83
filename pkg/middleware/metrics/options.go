package metrics

import (
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

var (
	skipMu    sync.RWMutex
	skipPaths = map[string]struct{}{"/metrics": {}}
)

// SkipPaths excludes exact request paths from the HTTP collectors.
// "/metrics" is always skipped.
func SkipPaths(paths ...string) {
	skipMu.Lock()
	defer skipMu.Unlock()
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			skipPaths[p] = struct{}{}
		}
	}
}

func skipped(r *http.Request) bool {
	skipMu.RLock()
	defer skipMu.RUnlock()
	_, ok := skipPaths[r.URL.Path]
	return ok
}

// routeLabel is the matched chi pattern ("/users/{id}") when the request
// went through a chi router, else the raw path.
func routeLabel(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
