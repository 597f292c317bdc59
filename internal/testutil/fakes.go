package testutil

import (
	"io"
	"sync"

	"github.com/sophialabs/ringconsole/internal/infrastructure/ports"
)

var _ ports.Logger = (*NoopLogger)(nil)

// NoopLogger discards all log output.
type NoopLogger struct{}

func (l *NoopLogger) Info(string, ...any)  {}
func (l *NoopLogger) Warn(string, ...any)  {}
func (l *NoopLogger) Error(string, ...any) {}
func (l *NoopLogger) Debug(string, ...any) {}

var _ ports.LineReader = (*ScriptedReader)(nil)

// ScriptedReader replays a fixed list of input lines, then returns Err
// (io.EOF when nil). Prompts are recorded in order.
type ScriptedReader struct {
	mu      sync.Mutex
	Lines   []string
	Err     error
	Prompts []string
	Closed  bool
}

func (r *ScriptedReader) ReadLine(prompt string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Prompts = append(r.Prompts, prompt)
	if len(r.Lines) == 0 {
		if r.Err != nil {
			return "", r.Err
		}
		return "", io.EOF
	}
	line := r.Lines[0]
	r.Lines = r.Lines[1:]
	return line, nil
}

func (r *ScriptedReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Closed = true
	return nil
}

var _ ports.LineReader = (*StuckReader)(nil)

// StuckReader blocks in both ReadLine and Close until Release is closed, like
// a terminal whose input goroutine cannot be interrupted.
type StuckReader struct {
	Release chan struct{}
}

// NewStuckReader creates a StuckReader.
func NewStuckReader() *StuckReader {
	return &StuckReader{Release: make(chan struct{})}
}

func (r *StuckReader) ReadLine(string) (string, error) {
	<-r.Release
	return "", io.EOF
}

func (r *StuckReader) Close() error {
	<-r.Release
	return nil
}
