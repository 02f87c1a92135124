// Command monitor evaluates every subscribed user's thresholds against the
// previous calendar month and publishes alerts. It is intended to be
// invoked by an external scheduler, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error or at least one user failed.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/carbontrack-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunMonitor(ctx); err != nil {
		slog.Error("monitor failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
