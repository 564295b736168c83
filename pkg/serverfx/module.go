package serverfx

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	chimd "github.com/go-chi/chi/v5/middleware"
	"github.com/joeydtaylor/authdelegate/pkg/bundlefx"
	"github.com/joeydtaylor/authdelegate/pkg/config"
	"github.com/joeydtaylor/authdelegate/pkg/middleware/auth"
	"github.com/joeydtaylor/authdelegate/pkg/middleware/inactivity"
	"github.com/joeydtaylor/authdelegate/pkg/middleware/logger"
	"github.com/joeydtaylor/authdelegate/pkg/middleware/metrics"
	"github.com/joeydtaylor/authdelegate/pkg/transport/httpx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Options allow per-service env keys/defaults without code duplication.
type Options struct {
	ConfigEnv     string // e.g. "APP_CONFIG"
	DefaultConfig string // e.g. "authdelegate.toml"

	// Config, when set, is used instead of loading from disk and env.
	Config *config.Config

	// AuthModule replaces auth.Module, e.g. auth.ModuleFor[int64](auth.Int64Identity).
	AuthModule fx.Option
}

func (o Options) withDefaults() Options {
	if o.ConfigEnv == "" {
		o.ConfigEnv = "APP_CONFIG"
	}
	if o.DefaultConfig == "" {
		o.DefaultConfig = "authdelegate.toml"
	}
	if o.AuthModule == nil {
		o.AuthModule = auth.Module
	}
	return o
}

func provideConfig(opts Options) (config.Config, error) {
	if opts.Config != nil {
		c := *opts.Config
		return c, c.Validate()
	}
	return config.Load(envOr(opts.ConfigEnv, opts.DefaultConfig))
}

// ---- Router ----

type routerDeps struct {
	fx.In

	LogMW   *logger.Middleware
	Metrics http.Handler `name:"metrics"`
	Idle    *inactivity.Tracker
	Auth    func(http.Handler) http.Handler `name:"auth"`
}

type routers struct {
	fx.Out

	Root      httpx.Router
	Protected httpx.Router `name:"protected"`
}

// provideRouters serves /metrics in the clear and hands out a protected
// router for application routes.
func provideRouters(d routerDeps) routers {
	r := httpx.NewChi()
	r.Use(
		chimd.RequestID,
		d.LogMW.Middleware(),
		metrics.Collect(),
		d.Idle.Middleware(),
	)
	r.Get("/metrics", d.Metrics)
	return routers{Root: r, Protected: r.With(d.Auth)}
}

// ---- Server lifecycle ----

type serverDeps struct {
	fx.In

	Server     config.Server
	Inactivity config.Inactivity
	Logger     *zap.Logger
	Root       httpx.Router
	Idle       *inactivity.Tracker
	Shutdowner fx.Shutdowner
}

func registerHooks(lc fx.Lifecycle, d serverDeps) {
	srv := &http.Server{
		Addr:         d.Server.Listen,
		Handler:      d.Root.Mux(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		TLSConfig:    &tls.Config{MinVersion: tls.VersionTLS13, MaxVersion: tls.VersionTLS13},
	}
	useTLS := fileExists(d.Server.TLSCert) && fileExists(d.Server.TLSKey)

	watchCtx, watchCancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}

			if useTLS {
				d.Logger.Info("server starting (TLS)",
					zap.String("service", d.Server.Service),
					zap.String("addr", ln.Addr().String()),
					zap.String("cert", d.Server.TLSCert),
				)
			} else {
				d.Logger.Info("server starting (PLAINTEXT)",
					zap.String("service", d.Server.Service),
					zap.String("addr", ln.Addr().String()),
				)
				srv.TLSConfig = nil
			}

			go func() {
				var err error
				if useTLS {
					err = srv.ServeTLS(ln, d.Server.TLSCert, d.Server.TLSKey)
				} else {
					err = srv.Serve(ln)
				}
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					d.Logger.Error("server failed", zap.Error(err))
					_ = d.Shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()

			if limit := d.Inactivity.LimitSeconds; limit > 0 {
				go watchIdle(watchCtx, d, time.Duration(limit)*time.Second,
					time.Duration(d.Inactivity.CheckIntervalSeconds)*time.Second)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			d.Logger.Info("server stopping", zap.String("service", d.Server.Service))
			watchCancel()
			return srv.Shutdown(ctx)
		},
	})
}

func watchIdle(ctx context.Context, d serverDeps, limit, interval time.Duration) {
	if err := d.Idle.WaitForIdle(ctx, limit, interval); err != nil {
		return
	}
	d.Logger.Info("idle limit reached, shutting down",
		zap.Duration("limit", limit),
		zap.Time("lastRequest", d.Idle.LastSeen()),
	)
	_ = d.Shutdowner.Shutdown()
}

// ---- Public Fx module ----

func Module(opts Options) fx.Option {
	opts = opts.withDefaults()
	return fx.Options(
		fx.Supply(opts),
		fx.Provide(provideConfig),

		bundlefx.Ambient,
		opts.AuthModule,

		fx.Provide(provideRouters),
		fx.Invoke(registerHooks),
	)
}

// ---- helpers ----

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
