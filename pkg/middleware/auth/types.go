package auth

import (
	"errors"
	"net/http"
	"strconv"
)

var (
	// ErrInvalidConfig is returned by New when the delegate cannot be built.
	ErrInvalidConfig = errors.New("auth: invalid configuration")

	ErrNoCookieHeader      = errors.New("auth: no cookie header")
	ErrCookieHeaderNotText = errors.New("auth: cookie header is not valid text")
	ErrCookieNotFound      = errors.New("auth: cookie not found")

	// ErrAuthorityUnreachable wraps every transport failure talking to the validation endpoint.
	ErrAuthorityUnreachable = errors.New("auth: remote authority unreachable")
	ErrRejectedByAuthority  = errors.New("auth: rejected by remote authority")

	ErrMalformedToken  = errors.New("auth: malformed token")
	ErrMissingSubject  = errors.New("auth: token has no subject")
	ErrIdentityMapping = errors.New("auth: subject does not map to an identity")
)

// Credential is the matched cookie pair. Segment is forwarded verbatim to the authority.
type Credential struct {
	Name    string
	Value   string
	Segment string
}

// Outcome is the result of one authorization attempt: either an identity or a
// rejection status, never both.
type Outcome[T any] struct {
	identity T
	subject  string
	status   int
	err      error
}

func authorized[T any](id T, subject string) Outcome[T] {
	return Outcome[T]{identity: id, subject: subject}
}

func rejected[T any](status int, err error) Outcome[T] {
	return Outcome[T]{status: status, err: err}
}

func (o Outcome[T]) Authorized() bool { return o.status == 0 }

// Identity is the zero value for a rejected outcome.
func (o Outcome[T]) Identity() T { return o.identity }

func (o Outcome[T]) Subject() string { return o.subject }

// Status is one of 400, 401, 403 or 502 for a rejection and 0 otherwise.
func (o Outcome[T]) Status() int { return o.status }

// Err carries the diagnostic cause of a rejection. It is meant for logs, not clients.
func (o Outcome[T]) Err() error { return o.err }

func (o Outcome[T]) label() string {
	if o.Authorized() {
		return OutcomeAuthorized
	}
	return strconv.Itoa(o.status)
}

// statusFor maps a stage failure to its rejection status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNoCookieHeader), errors.Is(err, ErrCookieNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAuthorityUnreachable):
		return http.StatusBadGateway
	case errors.Is(err, ErrRejectedByAuthority):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
