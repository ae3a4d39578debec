package components

import (
	"context"

	"labreserve/internal/pkg/config"
	"labreserve/internal/usecase/commands"
	"labreserve/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewCompleter,
	),
	fx.Invoke(registerCompleter),
)

func NewCompleter(cfg config.Config, cmds commands.ReservationCommands) *worker.Completer {
	return worker.NewCompleter(cmds, cfg.Worker.SweepInterval)
}

func registerCompleter(lc fx.Lifecycle, completer *worker.Completer) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			completer.Start(context.WithoutCancel(ctx))
			return nil
		},
		OnStop: func(_ context.Context) error {
			completer.Stop()
			return nil
		},
	})
}
