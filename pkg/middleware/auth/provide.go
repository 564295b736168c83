package auth

import (
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Config   Config
	Logger   *zap.Logger
	Recorder OutcomeRecorder `optional:"true"`
	Client   HTTPDoer        `optional:"true"`
}

// Module provides a *Delegate[string] keyed on the raw subject, plus its
// middleware under name:"auth".
var Module = ModuleFor[string](StringIdentity)

// ModuleFor is Module for an application-defined identity type.
func ModuleFor[T any](mapper IdentityMapper[T]) fx.Option {
	return fx.Options(
		fx.Provide(func(p Params) (*Delegate[T], error) {
			return New[T](p.Config, mapper,
				WithLogger(p.Logger.Named("auth")),
				WithRecorder(p.Recorder),
				WithHTTPClient(p.Client),
			)
		}),
		fx.Provide(fx.Annotate(
			func(d *Delegate[T]) func(http.Handler) http.Handler { return d.Middleware() },
			fx.ResultTags(`name:"auth"`),
		)),
	)
}
