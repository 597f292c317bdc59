package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sophialabs/ringconsole/internal/app"
	"github.com/sophialabs/ringconsole/internal/testutil"
)

func TestNew_Success(t *testing.T) {
	cfg := app.DefaultConfig()

	a, err := app.New(cfg, app.Streams{Reader: &testutil.ScriptedReader{}, Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a == nil {
		t.Fatal("expected non-nil App")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.LogLevel = "loud"

	_, err := app.New(cfg, app.Streams{Reader: &testutil.ScriptedReader{}})
	if err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestRun_Session(t *testing.T) {
	var out, logs bytes.Buffer
	cfg := app.DefaultConfig()
	cfg.Color = false
	cfg.LogLevel = "debug"

	reader := &testutil.ScriptedReader{Lines: []string{"2", "1", "1", "1", "2", "4"}}
	a, err := app.New(cfg, app.Streams{Reader: reader, Out: &out, Err: &logs})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	for _, want := range []string{
		"Enqueued value 1\nBuffer State: [1] [ ]\n",
		"Enqueued value 2\nBuffer State: [1] [2]\n",
		"Exiting program.\n",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out.String())
		}
	}
	if !strings.Contains(logs.String(), "session ended") || !strings.Contains(logs.String(), "count=2") {
		t.Errorf("expected session summary in logs, got:\n%s", logs.String())
	}
	if !strings.Contains(logs.String(), "action=insert") {
		t.Errorf("expected debug command logs, got:\n%s", logs.String())
	}
	if !reader.Closed {
		t.Error("expected reader to be closed")
	}
}

func TestRun_LogsStayOffStdout(t *testing.T) {
	var out, logs bytes.Buffer
	cfg := app.DefaultConfig()
	cfg.Capacity = 1
	cfg.Color = false

	a, err := app.New(cfg, app.Streams{Reader: &testutil.ScriptedReader{Lines: []string{"4"}}, Out: &out, Err: &logs})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if strings.Contains(out.String(), "level=") {
		t.Errorf("log records leaked to stdout:\n%s", out.String())
	}
	if !strings.Contains(logs.String(), "ring buffer created") {
		t.Errorf("expected creation log, got:\n%s", logs.String())
	}
}

func TestRun_CancelledContext(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.Capacity = 2

	a, err := app.New(cfg, app.Streams{Reader: &testutil.ScriptedReader{}, Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestRun_ReaderFailure(t *testing.T) {
	boom := errors.New("tty gone")
	cfg := app.DefaultConfig()
	cfg.Capacity = 2

	a, err := app.New(cfg, app.Streams{Reader: &testutil.ScriptedReader{Err: boom}, Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := a.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected reader error, got %v", err)
	}
}

func TestRun_WithAllLogLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		t.Run(level, func(t *testing.T) {
			cfg := app.DefaultConfig()
			cfg.LogLevel = level

			a, err := app.New(cfg, app.Streams{Reader: &testutil.ScriptedReader{}, Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
			if err != nil {
				t.Fatalf("New failed for log level %q: %v", level, err)
			}
			if err := a.Run(context.Background()); err != nil {
				t.Fatalf("Run failed for log level %q: %v", level, err)
			}
		})
	}
}

func TestRun_CancelWhilePromptPending(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	var logs bytes.Buffer
	cfg := app.DefaultConfig()
	cfg.Capacity = 2
	cfg.Color = false

	// No Reader override: input goes through the real readline terminal.
	a, err := app.New(cfg, app.Streams{In: pr, Out: io.Discard, Err: &logs})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run(ctx)
	}()

	// Let the loop block on the choice prompt of the silent pipe.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation with a pending prompt")
	}

	if !strings.Contains(logs.String(), "session ended") {
		t.Errorf("expected session summary, got:\n%s", logs.String())
	}
}

func TestRun_StuckTerminalBoundedByTimeout(t *testing.T) {
	reader := testutil.NewStuckReader()
	t.Cleanup(func() { close(reader.Release) })

	cfg := app.DefaultConfig()
	cfg.Capacity = 2
	cfg.ShutdownTimeout = 100 * time.Millisecond

	a, err := app.New(cfg, app.Streams{Reader: reader, Out: io.Discard, Err: io.Discard})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run blocked on a terminal that never closes")
	}
}
