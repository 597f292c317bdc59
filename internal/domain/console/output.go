package console

import (
	"strconv"
	"strings"

	"github.com/sophialabs/ringconsole/internal/domain/ring"
)

// Kind classifies a message for presentation.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindError
	KindNotice
	KindValue
)

// Message is a single line of console output. Emphasis, when set, is appended
// to Text and presented as EmphasisKind.
type Message struct {
	Kind         Kind
	Text         string
	Emphasis     string
	EmphasisKind Kind
}

// String returns the uncoloured line.
func (m Message) String() string {
	return m.Text + m.Emphasis
}

// Output is what one command produces. Snapshot is nil when the command does
// not show the buffer.
type Output struct {
	Messages []Message
	Snapshot []ring.Slot[int]
}

// SnapshotPrefix precedes the rendered slots.
const SnapshotPrefix = "Buffer State: "

// EmptyCell is the rendering of an unoccupied slot.
const EmptyCell = "[ ]"

// Cell renders one slot.
func Cell(s ring.Slot[int]) string {
	if !s.Occupied {
		return EmptyCell
	}
	return "[" + strconv.Itoa(s.Value) + "]"
}

// RenderSnapshot renders slots without colour, e.g. "Buffer State: [1] [ ]".
func RenderSnapshot(slots []ring.Slot[int]) string {
	cells := make([]string, len(slots))
	for i, s := range slots {
		cells[i] = Cell(s)
	}
	return SnapshotPrefix + strings.Join(cells, " ")
}

// RenderPlain renders the whole output as uncoloured lines.
func RenderPlain(o Output) []string {
	lines := make([]string, 0, len(o.Messages)+1)
	for _, m := range o.Messages {
		lines = append(lines, m.String())
	}
	if o.Snapshot != nil {
		lines = append(lines, RenderSnapshot(o.Snapshot))
	}
	return lines
}
