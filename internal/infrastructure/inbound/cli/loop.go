package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sophialabs/ringconsole/internal/domain/console"
	"github.com/sophialabs/ringconsole/internal/infrastructure/ports"
)

const (
	promptCapacity = "Enter the capacity of the buffer: "
	promptChoice   = "Enter your choice (1/2/3/4): "
	promptValue    = "Enter the value to enqueue: "
)

// Renderer presents console output.
type Renderer interface {
	Render(out console.Output) error
	Message(m console.Message) error
	Lines(lines []string) error
}

// Loop is the interactive menu driver. It owns a single console.State.
type Loop struct {
	reader   ports.LineReader
	renderer Renderer
	logger   ports.Logger
	capacity int
}

// NewLoop creates a Loop. A positive capacity skips the capacity prompt.
func NewLoop(reader ports.LineReader, renderer Renderer, logger ports.Logger, capacity int) *Loop {
	return &Loop{
		reader:   reader,
		renderer: renderer,
		logger:   logger,
		capacity: capacity,
	}
}

// Run drives the session until the user exits, input ends, or ctx is done.
// End of input and interrupts are a normal exit. The final state is returned.
func (l *Loop) Run(ctx context.Context) (console.State, error) {
	state, err := l.initState(ctx)
	if err != nil {
		return console.State{}, l.finish(err)
	}
	l.logger.Info("ring buffer created", "capacity", state.Buffer.Cap())

	for !state.Done {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		if err := l.renderer.Lines(console.Menu()); err != nil {
			return state, fmt.Errorf("failed to write menu: %w", err)
		}
		cmd, ok, err := l.readCommand()
		if err != nil {
			return state, l.finish(err)
		}
		if !ok {
			continue
		}

		var out console.Output
		state, out = console.Apply(state, cmd)
		l.logger.Debug("command applied", "action", cmd.Action.String(), "count", state.Buffer.Len())
		if err := l.renderer.Render(out); err != nil {
			return state, fmt.Errorf("failed to write output: %w", err)
		}
	}
	return state, nil
}

func (l *Loop) initState(ctx context.Context) (console.State, error) {
	if l.capacity > 0 {
		return console.NewState(l.capacity)
	}
	for {
		if err := ctx.Err(); err != nil {
			return console.State{}, err
		}
		line, err := l.reader.ReadLine(promptCapacity)
		if err != nil {
			return console.State{}, err
		}
		capacity, err := console.ParseCapacity(line)
		if err != nil {
			l.logger.Debug("rejected capacity", "input", line, "error", err)
			if err := l.errorf("Error: %v", err); err != nil {
				return console.State{}, err
			}
			continue
		}
		return console.NewState(capacity)
	}
}

// readCommand returns ok=false when the input was rejected and already reported.
func (l *Loop) readCommand() (console.Command, bool, error) {
	line, err := l.reader.ReadLine(promptChoice)
	if err != nil {
		return console.Command{}, false, err
	}
	action, err := console.ParseAction(line)
	if err != nil {
		return console.Command{}, false, l.errorf("Invalid choice. Please enter a valid option.")
	}
	if action != console.ActionInsert {
		return console.Command{Action: action}, true, nil
	}

	line, err = l.reader.ReadLine(promptValue)
	if err != nil {
		return console.Command{}, false, err
	}
	value, err := console.ParseValue(line)
	if err != nil {
		return console.Command{}, false, l.errorf("Error: %v", err)
	}
	return console.Command{Action: action, Value: value}, true, nil
}

func (l *Loop) errorf(format string, args ...any) error {
	return l.renderer.Message(console.Message{Kind: console.KindError, Text: fmt.Sprintf(format, args...)})
}

// finish turns end of input and interrupts into a clean exit.
func (l *Loop) finish(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, ports.ErrInterrupted) {
		l.logger.Debug("input closed", "reason", err)
		return l.renderer.Message(console.Message{Kind: console.KindNotice, Text: "Exiting program."})
	}
	return err
}
