// bundlefx/bundlefx.go
package bundlefx

import (
	"github.com/joeydtaylor/authdelegate/pkg/config"
	"github.com/joeydtaylor/authdelegate/pkg/middleware/inactivity"
	"github.com/joeydtaylor/authdelegate/pkg/middleware/logger"
	"github.com/joeydtaylor/authdelegate/pkg/middleware/metrics"
	"go.uber.org/fx"
)

// Ambient is everything except the auth delegate, which serverfx adds per
// identity type. It expects a config.Config to be provided.
var Ambient = fx.Options(
	config.Module,
	logger.Module,
	metrics.Module,
	inactivity.Module,
)
