package ports

import "errors"

// ErrInterrupted is returned by a LineReader when the user aborts input (Ctrl-C).
var ErrInterrupted = errors.New("input interrupted")

// Logger provides structured logging.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// LineReader reads one line of user input after showing prompt.
// It returns io.EOF when input is exhausted and ErrInterrupted on Ctrl-C.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}
