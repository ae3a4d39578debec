package bootstrap

import (
	"log/slog"

	"labreserve/internal/handler/middleware"
	"labreserve/internal/pkg/config"

	"go.uber.org/fx"
)

// LoggerModule builds the process logger exactly once; everything else
// receives it through injection.
var LoggerModule = fx.Module("logger",
	fx.Provide(
		func(cfg config.Config) *middleware.Logger {
			return middleware.NewLogger(cfg.Log)
		},
		func(l *middleware.Logger) *slog.Logger {
			return l.GetSlogLogger()
		},
	),
)
