package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sophialabs/ringconsole/internal/domain/ring"
)

var (
	// ErrInvalidChoice is returned by ParseAction for an unknown menu entry.
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrInvalidNumber is returned when a capacity or value is not an integer.
	ErrInvalidNumber = errors.New("invalid number")
)

// Action is a menu entry.
type Action int

const (
	ActionInsert Action = iota + 1
	ActionRemove
	ActionDisplay
	ActionExit
)

func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionRemove:
		return "remove"
	case ActionDisplay:
		return "display"
	case ActionExit:
		return "exit"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ParseAction maps a menu choice ("1".."4") to an Action.
func ParseAction(choice string) (Action, error) {
	switch strings.TrimSpace(choice) {
	case "1":
		return ActionInsert, nil
	case "2":
		return ActionRemove, nil
	case "3":
		return ActionDisplay, nil
	case "4":
		return ActionExit, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidChoice, choice)
}

// ParseCapacity parses a positive buffer capacity.
func ParseCapacity(s string) (int, error) {
	n, err := ParseValue(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: got %d", ring.ErrInvalidCapacity, n)
	}
	return n, nil
}

// ParseValue parses an integer to enqueue.
func ParseValue(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidNumber, err)
	}
	return n, nil
}

// Menu returns the option lines shown before each choice.
func Menu() []string {
	return []string{
		"Options:",
		"1. Enqueue value",
		"2. Dequeue value",
		"3. Display buffer state",
		"4. Exit",
	}
}

// Command is one user request. Value is only read for ActionInsert.
type Command struct {
	Action Action
	Value  int
}

// State is the console session state.
type State struct {
	Buffer *ring.RingBuffer[int]
	Done   bool
}

// NewState creates a session over an empty buffer of the given capacity.
func NewState(capacity int) (State, error) {
	rb, err := ring.New[int](capacity)
	if err != nil {
		return State{}, err
	}
	return State{Buffer: rb}, nil
}

// Apply executes cmd against s and returns the resulting state and the output
// to show. The buffer held by s is never modified.
func Apply(s State, cmd Command) (State, Output) {
	if s.Done {
		return s, Output{}
	}

	switch cmd.Action {
	case ActionInsert:
		next := State{Buffer: s.Buffer.Clone()}
		next.Buffer.Insert(cmd.Value)
		return next, Output{
			Messages: []Message{{
				Kind:         KindInfo,
				Text:         "Enqueued value ",
				Emphasis:     strconv.Itoa(cmd.Value),
				EmphasisKind: KindValue,
			}},
			Snapshot: next.Buffer.Snapshot(),
		}

	case ActionRemove:
		next := State{Buffer: s.Buffer.Clone()}
		if err := next.Buffer.RemoveOldest(); err != nil {
			return s, Output{
				Messages: []Message{{Kind: KindError, Text: "Buffer is empty. Cannot dequeue."}},
				Snapshot: s.Buffer.Snapshot(),
			}
		}
		return next, Output{
			Messages: []Message{{
				Kind:         KindInfo,
				Text:         "Dequeued value ",
				Emphasis:     "success",
				EmphasisKind: KindSuccess,
			}},
			Snapshot: next.Buffer.Snapshot(),
		}

	case ActionDisplay:
		return s, Output{Snapshot: s.Buffer.Snapshot()}

	case ActionExit:
		return State{Buffer: s.Buffer, Done: true}, Output{
			Messages: []Message{{Kind: KindNotice, Text: "Exiting program."}},
		}
	}

	return s, Output{
		Messages: []Message{{Kind: KindError, Text: "Invalid choice. Please enter a valid option."}},
	}
}
