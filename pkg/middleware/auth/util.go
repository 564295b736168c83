package auth

import (
	"net/http"
	"strings"
)

// locateCookie finds the first pair named name in the request's Cookie header.
// Only the first Cookie header value is consulted.
func locateCookie(header http.Header, name string) (Credential, error) {
	values := header.Values("Cookie")
	if len(values) == 0 {
		return Credential{}, ErrNoCookieHeader
	}
	raw := values[0]
	if !isHeaderText(raw) {
		return Credential{}, ErrCookieHeaderNotText
	}

	for _, segment := range strings.Split(raw, ";") {
		// the "; " separator's space belongs to the delimiter, not the name
		segment = strings.TrimLeft(segment, " \t")
		k, v, ok := strings.Cut(segment, "=")
		if !ok || k != name {
			continue
		}
		return Credential{Name: k, Value: v, Segment: segment}, nil
	}
	return Credential{}, ErrCookieNotFound
}

// isHeaderText accepts visible ASCII, space and horizontal tab.
func isHeaderText(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == '\t' {
			continue
		}
		if b < 0x20 || b > 0x7e {
			return false
		}
	}
	return true
}
