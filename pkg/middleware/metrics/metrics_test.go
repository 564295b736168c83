package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joeydtaylor/authdelegate/pkg/middleware/auth"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	authority := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer authority.Close()

	d, err := auth.New[string](
		auth.Config{CookieName: "auth", ValidateURL: authority.URL},
		auth.StringIdentity,
		auth.WithRecorder(AuthRecorder{}),
	)
	require.NoError(t, err)

	h := Collect()(d.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	okBefore := testutil.ToFloat64(totalHttpRequests.WithLabelValues("200", http.MethodGet))
	unauthBefore := testutil.ToFloat64(totalHttpRequests.WithLabelValues("401", http.MethodGet))
	authdBefore := testutil.ToFloat64(totalHttpRequestsAuthenticated.WithLabelValues("true"))
	anonBefore := testutil.ToFloat64(totalHttpRequestsAuthenticated.WithLabelValues("false"))
	authorizedBefore := testutil.ToFloat64(authOutcomes.WithLabelValues(auth.OutcomeAuthorized))
	rejectedBefore := testutil.ToFloat64(authOutcomes.WithLabelValues("401"))

	req := httptest.NewRequest(http.MethodGet, "/things", nil)
	req.Header.Set("Cookie", "auth=eyJhbGciOiJub25lIn0.eyJzdWIiOiI5In0.")
	h.ServeHTTP(httptest.NewRecorder(), req)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things", nil))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(totalHttpRequests.WithLabelValues("200", http.MethodGet)))
	assert.Equal(t, unauthBefore+1, testutil.ToFloat64(totalHttpRequests.WithLabelValues("401", http.MethodGet)))
	assert.Equal(t, authdBefore+1, testutil.ToFloat64(totalHttpRequestsAuthenticated.WithLabelValues("true")))
	assert.Equal(t, anonBefore+1, testutil.ToFloat64(totalHttpRequestsAuthenticated.WithLabelValues("false")))
	assert.Equal(t, authorizedBefore+1, testutil.ToFloat64(authOutcomes.WithLabelValues(auth.OutcomeAuthorized)))
	assert.Equal(t, rejectedBefore+1, testutil.ToFloat64(authOutcomes.WithLabelValues("401")))
}

func TestCollect_SkipPath(t *testing.T) {
	SkipPaths(" /healthz ")
	h := Collect()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := testutil.ToFloat64(totalHttpRequests.WithLabelValues("418", http.MethodGet))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, before, testutil.ToFloat64(totalHttpRequests.WithLabelValues("418", http.MethodGet)))
}

func TestCollect_RoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Collect())
	r.Get("/users/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	before := testutil.ToFloat64(totalHttpRequestsToUri.WithLabelValues("202", "/users/{id}", http.MethodGet))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/7", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/8", nil))
	assert.Equal(t, before+2, testutil.ToFloat64(totalHttpRequestsToUri.WithLabelValues("202", "/users/{id}", http.MethodGet)))
}

func TestAuthRecorder_ObserveValidation(t *testing.T) {
	AuthRecorder{}.ObserveValidation(auth.VerdictReject, 10*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(remoteAuthoritySeconds, "remote_authority_seconds"), 1)
}

func TestPromHandler(t *testing.T) {
	AuthRecorder{}.RecordOutcome("403")

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `auth_outcomes_total{status="403"}`))
}
