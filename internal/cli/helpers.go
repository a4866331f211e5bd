package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/google/uuid"

	"github.com/aretw0/meshtopo/internal/logging"
	"github.com/aretw0/meshtopo/pkg/domain"
)

// SignalContext is a context cancelled on SIGINT or SIGTERM that remembers the signal.
type SignalContext struct {
	context.Context
	Cancel context.CancelFunc

	mu  sync.Mutex
	sig os.Signal
}

// NewSignalContext starts watching for SIGINT and SIGTERM until the context is done.
// Callers must call Cancel to release the signal handler.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{Context: ctx, Cancel: cancel}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			sc.mu.Lock()
			sc.sig = sig
			sc.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()
	return sc
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sig
}

// interruptCause names what stopped a run for the user.
func interruptCause(ctx context.Context) string {
	if sc, ok := ctx.(*SignalContext); ok {
		if sig := sc.Signal(); sig != nil {
			return sig.String()
		}
	}
	return "cancelled"
}

// createLogger configures the run logger. --debug wins over the configured level.
// Every record carries the run id so that logs of concurrent runs can be told apart.
func createLogger(w io.Writer, level string, debug bool) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if debug {
		lvl = slog.LevelDebug
	}
	return logging.NewWriter(w, lvl).With("run_id", uuid.NewString()), nil
}

func createDebugHooks(logger *slog.Logger) domain.BuildHooks {
	return domain.BuildHooks{
		OnBuilt: func(ctx context.Context, e *domain.BuildEvent) {
			logger.Debug("Topology Built",
				"duration", e.Duration,
				"triangles", e.Stats.Triangles,
				"edges", e.Stats.Edges,
				"ignored", e.Stats.Ignored,
			)
		},
		OnViolation: func(ctx context.Context, v *domain.IntegrityError) {
			logger.Debug("Integrity Violation", "element", v.Element, "reason", v.Reason)
		},
	}
}

// chainHooks calls every non-nil callback of each hook set in order.
func chainHooks(sets ...domain.BuildHooks) domain.BuildHooks {
	return domain.BuildHooks{
		OnBuilt: func(ctx context.Context, e *domain.BuildEvent) {
			for _, h := range sets {
				if h.OnBuilt != nil {
					h.OnBuilt(ctx, e)
				}
			}
		},
		OnViolation: func(ctx context.Context, v *domain.IntegrityError) {
			for _, h := range sets {
				if h.OnViolation != nil {
					h.OnViolation(ctx, v)
				}
			}
		},
	}
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
