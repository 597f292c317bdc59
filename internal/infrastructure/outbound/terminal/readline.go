package terminal

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/chzyer/readline"

	"github.com/sophialabs/ringconsole/internal/infrastructure/ports"
)

var _ ports.LineReader = (*ReadlineReader)(nil)

// ReadlineReader implements ports.LineReader on top of chzyer/readline.
//
// readline's Close waits for its input goroutine but cannot interrupt a read
// blocked on the caller's reader, so input is copied through a pipe this type
// owns. Closing that pipe lets Close return while a prompt is pending.
type ReadlineReader struct {
	rl        *readline.Instance
	in        *io.PipeReader
	closeOnce sync.Once
	closeErr  error
}

// ReadlineOptions configures a ReadlineReader. Zero values use the process
// standard streams and disable history persistence.
type ReadlineOptions struct {
	Stdin       io.Reader
	Stdout      io.Writer
	HistoryFile string
}

// NewReadlineReader creates a line reader.
func NewReadlineReader(opts ReadlineOptions) (*ReadlineReader, error) {
	src := opts.Stdin
	if src == nil {
		src = os.Stdin
	}
	pr, pw := io.Pipe()

	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:     opts.HistoryFile,
		InterruptPrompt: "^C",
		Stdin:           pr,
		Stdout:          opts.Stdout,
	})
	if err != nil {
		_ = pr.Close()
		return nil, err
	}

	// The copy may outlive Close while src is blocked; it ends on the next
	// write into the closed pipe.
	go func() {
		_, err := io.Copy(pw, src)
		_ = pw.CloseWithError(err)
	}()

	return &ReadlineReader{rl: rl, in: pr}, nil
}

// ReadLine shows prompt and returns the next line without its terminator.
func (r *ReadlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ports.ErrInterrupted
	}
	return line, err
}

// Close stops input and releases the terminal. A pending ReadLine returns
// with an error. It is idempotent.
func (r *ReadlineReader) Close() error {
	r.closeOnce.Do(func() {
		_ = r.in.Close()
		r.closeErr = r.rl.Close()
	})
	return r.closeErr
}
