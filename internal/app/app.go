package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sophialabs/ringconsole/internal/domain/console"
	"github.com/sophialabs/ringconsole/internal/infrastructure/outbound/logging"
	"github.com/sophialabs/ringconsole/internal/infrastructure/ports"
	"github.com/sophialabs/ringconsole/internal/infrastructure/wiring"
)

// Streams are the process streams the application talks to. Nil fields fall
// back to os.Stdin, os.Stdout and os.Stderr.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Reader replaces the terminal line reader; In is then unused.
	Reader ports.LineReader
}

// App is the thin lifecycle manager that delegates dependency construction to wiring.Container.
type App struct {
	cfg       Config
	container *wiring.Container
}

// New validates cfg, creates the logger and wires the console.
func New(cfg Config, s Streams) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if s.In == nil {
		s.In = os.Stdin
	}
	if s.Out == nil {
		s.Out = os.Stdout
	}
	if s.Err == nil {
		s.Err = os.Stderr
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.NewText(s.Err, level)

	container, err := wiring.New(wiring.Params{
		Capacity:    cfg.Capacity,
		Color:       cfg.Color,
		Logger:      logger,
		Reader:      s.Reader,
		Stdin:       s.In,
		Stdout:      s.Out,
		HistoryFile: cfg.HistoryFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to wire infrastructure: %w", err)
	}

	return &App{cfg: cfg, container: container}, nil
}

// Run executes the console session until the user exits, input ends, or
// SIGINT/SIGTERM or context cancellation stops it. Shutdown never waits longer
// than the configured timeout for the terminal to let go.
func (a *App) Run(ctx context.Context) error {
	logger := a.container.Logger()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	type result struct {
		state console.State
		err   error
	}
	done := make(chan result, 1)
	go func() {
		state, err := a.container.Loop().Run(ctx)
		done <- result{state: state, err: err}
	}()

	var res result
	select {
	case res = <-done:
		a.awaitClose(a.closeAsync(), time.After(a.cfg.ShutdownTimeout))

	case <-ctx.Done():
		// A second signal now terminates the process.
		stop()
		logger.Info("shutting down console...")

		deadline := time.NewTimer(a.cfg.ShutdownTimeout)
		defer deadline.Stop()

		// Closing the reader unblocks a pending prompt.
		closed := a.closeAsync()
		select {
		case res = <-done:
		case <-deadline.C:
			logger.Warn("console did not stop in time", "timeout", a.cfg.ShutdownTimeout)
			return nil
		}
		a.awaitClose(closed, deadline.C)
	}

	if res.err != nil && !errors.Is(res.err, context.Canceled) {
		return fmt.Errorf("console error: %w", res.err)
	}
	if res.state.Buffer != nil {
		logger.Info("session ended", "count", res.state.Buffer.Len(), "capacity", res.state.Buffer.Cap())
	}
	return nil
}

func (a *App) closeAsync() <-chan error {
	closed := make(chan error, 1)
	go func() {
		closed <- a.container.Close()
	}()
	return closed
}

func (a *App) awaitClose(closed <-chan error, timeout <-chan time.Time) {
	logger := a.container.Logger()
	select {
	case err := <-closed:
		if err != nil {
			logger.Warn("failed to close terminal", "error", err)
		}
	case <-timeout:
		logger.Warn("terminal did not close in time", "timeout", a.cfg.ShutdownTimeout)
	}
}
