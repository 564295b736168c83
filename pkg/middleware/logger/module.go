package logger

import (
	"context"

	"github.com/joeydtaylor/authdelegate/pkg/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// provideLoggers builds the system logger and the access-log middleware
// and flushes both when the app stops.
func provideLoggers(lc fx.Lifecycle, cfg config.Log) (*zap.Logger, *Middleware) {
	system := NewLog(cfg, SystemLog)
	access := NewLog(cfg, AccessLog)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = access.Sync()
			_ = system.Sync()
			return nil
		},
	})
	return system, NewMiddleware(access)
}

var Module = fx.Options(
	fx.Provide(provideLoggers),
)
