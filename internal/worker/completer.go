package worker

import (
	"context"
	"log/slog"
	"time"

	"labreserve/internal/usecase/commands"
)

// Completer periodically sweeps confirmed reservations whose slot has
// elapsed and moves them to completed, releasing their resources. It backs
// up the synchronous complete endpoint so reservations never stay confirmed
// forever when nobody calls it.
type Completer struct {
	commands commands.ReservationCommands
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewCompleter(cmds commands.ReservationCommands, interval time.Duration) *Completer {
	return &Completer{
		commands: cmds,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (w *Completer) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *Completer) Stop() {
	close(w.stop)
	<-w.done
}

func (w *Completer) run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.Info("completion sweep started", "interval", w.interval)
	for {
		select {
		case <-ticker.C:
			w.sweep(ctx)
		case <-w.stop:
			slog.Info("completion sweep stopped")
			return
		case <-ctx.Done():
			return
		}
	}
}

func (w *Completer) sweep(ctx context.Context) {
	n, err := w.commands.CompleteExpired(ctx)
	if err != nil {
		slog.Error("completion sweep failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("completion sweep finished", "completed", n)
	}
}
