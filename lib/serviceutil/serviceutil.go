package serviceutil

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// Fatal logs message with err and exits with status 1.
func Fatal(message string, err error) {
	if err != nil {
		slog.Error(message, "err", err)
	} else {
		slog.Error(message)
	}
	os.Exit(1)
}

// SignalContext is cancelled on the first SIGINT or SIGTERM, a second
// signal kills the process.
func SignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 2)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		slog.Warn("interrupted, stopping")
		cancel()
		<-signals
		os.Exit(130)
	}()
	return ctx
}
