package metrics

import (
	"net/http"
	"time"

	"github.com/joeydtaylor/authdelegate/pkg/middleware/auth"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// Handler serves the default registry. serverfx mounts it outside auth.
func Handler() http.Handler { return promhttp.Handler() }

// AuthRecorder feeds auth decisions into the auth_* collectors.
type AuthRecorder struct{}

var _ auth.OutcomeRecorder = AuthRecorder{}

func (AuthRecorder) ObserveValidation(verdict string, d time.Duration) {
	remoteAuthoritySeconds.WithLabelValues(verdict).Observe(d.Seconds())
}

func (AuthRecorder) RecordOutcome(outcome string) {
	authOutcomes.WithLabelValues(outcome).Inc()
}

func ProvideAuthRecorder() auth.OutcomeRecorder { return AuthRecorder{} }

var Module = fx.Options(
	fx.Provide(fx.Annotate(Handler, fx.ResultTags(`name:"metrics"`))),
	fx.Provide(ProvideAuthRecorder),
)
