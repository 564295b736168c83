package auth

import "net/http"

// Middleware adapts Authorize to net/http. Rejections get a bare status with
// no body; the cause only goes to the log.
func (d *Delegate[T]) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			out := d.Authorize(r.Context(), r.Header)
			if !out.Authorized() {
				w.WriteHeader(out.Status())
				return
			}
			ctx := withPrincipal(r.Context(), out.Identity(), out.Subject())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
