package wiring

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sophialabs/ringconsole/internal/infrastructure/inbound/cli"
	"github.com/sophialabs/ringconsole/internal/infrastructure/outbound/terminal"
	"github.com/sophialabs/ringconsole/internal/infrastructure/ports"
)

// Params holds the subset of configuration needed to construct infrastructure components.
type Params struct {
	Capacity int // 0 = ask on startup
	Color    bool
	Logger   ports.Logger

	// Reader overrides the readline reader; used by tests.
	Reader      ports.LineReader
	Stdin       io.Reader
	Stdout      io.Writer
	HistoryFile string
}

// Container owns the construction and lifecycle of all infrastructure components.
type Container struct {
	logger    ports.Logger
	reader    ports.LineReader
	loop      *cli.Loop
	closeOnce sync.Once
	closeErr  error
}

// New constructs all infrastructure components.
func New(p Params) (*Container, error) {
	if p.Capacity < 0 {
		return nil, fmt.Errorf("capacity must not be negative, got %d", p.Capacity)
	}

	if p.Stdout == nil {
		p.Stdout = os.Stdout
	}

	reader := p.Reader
	if reader == nil {
		rl, err := terminal.NewReadlineReader(terminal.ReadlineOptions{
			Stdin:       p.Stdin,
			Stdout:      p.Stdout,
			HistoryFile: p.HistoryFile,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open terminal: %w", err)
		}
		reader = rl
	}

	renderer := terminal.NewRenderer(p.Stdout, p.Color)
	loop := cli.NewLoop(reader, renderer, p.Logger, p.Capacity)

	return &Container{
		logger: p.Logger,
		reader: reader,
		loop:   loop,
	}, nil
}

// Close releases the line reader. It is idempotent.
func (c *Container) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.reader.Close()
	})
	return c.closeErr
}

// Logger returns the logger passed at construction time.
func (c *Container) Logger() ports.Logger {
	return c.logger
}

// Loop returns the interactive console loop.
func (c *Container) Loop() *cli.Loop {
	return c.loop
}
