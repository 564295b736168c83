package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// HTTPDoer is satisfied by *http.Client and allows easy mocking in tests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

const (
	VerdictAccept = "accept"
	VerdictReject = "reject"
	VerdictError  = "error"

	OutcomeAuthorized = "authorized"
)

// OutcomeRecorder receives per-request telemetry. metrics.AuthRecorder implements it.
type OutcomeRecorder interface {
	ObserveValidation(verdict string, d time.Duration)
	RecordOutcome(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveValidation(string, time.Duration) {}
func (nopRecorder) RecordOutcome(string)                    {}

func defaultHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:       10,
			IdleConnTimeout:    30 * time.Second,
			DisableCompression: true, // body is never read
		},
	}
}

// RemoteAuthority asks the validation endpoint whether a cookie is good.
// Verdicts are never cached.
type RemoteAuthority struct {
	client    HTTPDoer
	url       string
	timeout   time.Duration
	retryOnce bool
	recorder  OutcomeRecorder
}

func NewRemoteAuthority(client HTTPDoer, validateURL string, timeout time.Duration, retryOnce bool) *RemoteAuthority {
	if client == nil {
		client = defaultHTTPClient()
	}
	return &RemoteAuthority{
		client:    client,
		url:       validateURL,
		timeout:   timeout,
		retryOnce: retryOnce,
		recorder:  nopRecorder{},
	}
}

// Validate reports true only for a 200 response. Any other status is a
// rejection; errors are reserved for transport failures and wrap
// ErrAuthorityUnreachable. A rejection is never retried.
func (a *RemoteAuthority) Validate(ctx context.Context, segment string) (bool, error) {
	ok, err := a.attempt(ctx, segment)
	if err != nil && a.retryOnce && ctx.Err() == nil {
		ok, err = a.attempt(ctx, segment)
	}
	return ok, err
}

func (a *RemoteAuthority) attempt(ctx context.Context, segment string) (bool, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url, nil)
	if err != nil {
		a.recorder.ObserveValidation(VerdictError, time.Since(start))
		return false, fmt.Errorf("%w: %w", ErrAuthorityUnreachable, err)
	}
	// Set directly rather than via AddCookie, which would sanitize the value.
	req.Header.Set("Cookie", segment)
	// An empty value stops the transport from adding its default User-Agent.
	req.Header["User-Agent"] = []string{""}

	res, err := a.client.Do(req)
	if err != nil {
		a.recorder.ObserveValidation(VerdictError, time.Since(start))
		return false, fmt.Errorf("%w: %w", ErrAuthorityUnreachable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		a.recorder.ObserveValidation(VerdictReject, time.Since(start))
		return false, nil
	}
	a.recorder.ObserveValidation(VerdictAccept, time.Since(start))
	return true, nil
}
