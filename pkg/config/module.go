package config

import (
	"github.com/joeydtaylor/authdelegate/pkg/middleware/auth"
	"go.uber.org/fx"
)

// Module splits a provided Config into the per-component sections.
var Module = fx.Options(
	fx.Provide(
		func(c Config) auth.Config { return c.AuthConfig() },
		func(c Config) Server { return c.Server },
		func(c Config) Inactivity { return c.Inactivity },
		func(c Config) Log { return c.Log },
	),
)
