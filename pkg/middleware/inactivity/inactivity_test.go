package inactivity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestTracker_TouchResetsIdle(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	tr := newTracker(clk.Now)

	clk.Advance(3 * time.Second)
	assert.Equal(t, 3*time.Second, tr.Idle())

	tr.Touch()
	assert.Zero(t, tr.Idle())
	assert.True(t, clk.Now().Equal(tr.LastSeen()))
}

func TestTracker_Middleware(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	tr := newTracker(clk.Now)
	clk.Advance(time.Minute)

	called := false
	h := tr.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, called)
	assert.Zero(t, tr.Idle())
}

func TestTracker_SkippedPaths(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	tr := newTracker(clk.Now)
	tr.Skip(" /healthz ", "")
	h := tr.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	clk.Advance(time.Minute)
	for _, path := range []string{"/metrics", "/healthz"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, time.Minute, tr.Idle(), path)
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics/extra", nil))
	assert.Zero(t, tr.Idle())
}

func TestWaitForIdle(t *testing.T) {
	t.Run("returns once idle exceeds limit", func(t *testing.T) {
		clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		tr := newTracker(clk.Now)

		done := make(chan error, 1)
		go func() { done <- tr.WaitForIdle(context.Background(), 5*time.Second, time.Millisecond) }()

		// exactly at the limit is not idle yet
		clk.Advance(5 * time.Second)
		select {
		case <-done:
			t.Fatal("returned at the limit")
		case <-time.After(20 * time.Millisecond):
		}

		clk.Advance(time.Second)
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("did not return after limit passed")
		}
	})

	t.Run("already idle returns immediately", func(t *testing.T) {
		clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		tr := newTracker(clk.Now)
		clk.Advance(time.Hour)

		require.NoError(t, tr.WaitForIdle(context.Background(), time.Second, time.Hour))
	})

	t.Run("context cancellation", func(t *testing.T) {
		tr := New()
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := tr.WaitForIdle(ctx, time.Hour, time.Millisecond)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
