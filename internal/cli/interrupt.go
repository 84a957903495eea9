package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithInterrupt returns a context canceled on SIGINT or SIGTERM so
// in-flight requests stop cleanly. The stop function releases the
// signal handler.
func WithInterrupt(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
