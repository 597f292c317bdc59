package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/sophialabs/ringconsole/internal/domain/console"
	"github.com/sophialabs/ringconsole/internal/domain/ring"
)

// Renderer writes console output to a terminal, colouring it by message kind.
type Renderer struct {
	w        io.Writer
	occupied *color.Color
	empty    *color.Color
	kinds    map[console.Kind]*color.Color
}

// NewRenderer creates a Renderer writing to w. When colorize is false all
// output is plain text regardless of the terminal.
func NewRenderer(w io.Writer, colorize bool) *Renderer {
	r := &Renderer{
		w:        w,
		occupied: color.New(color.FgGreen),
		empty:    color.New(color.FgWhite),
		kinds: map[console.Kind]*color.Color{
			console.KindSuccess: color.New(color.FgGreen),
			console.KindError:   color.New(color.FgRed),
			console.KindNotice:  color.New(color.FgYellow),
			console.KindValue:   color.New(color.FgCyan),
		},
	}
	for _, c := range r.all() {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r *Renderer) all() []*color.Color {
	cs := []*color.Color{r.occupied, r.empty}
	for _, c := range r.kinds {
		cs = append(cs, c)
	}
	return cs
}

// Render writes every message followed by the snapshot, if any.
func (r *Renderer) Render(out console.Output) error {
	for _, m := range out.Messages {
		if err := r.Message(m); err != nil {
			return err
		}
	}
	if out.Snapshot != nil {
		return r.Snapshot(out.Snapshot)
	}
	return nil
}

// Message writes a single line, colouring Text and Emphasis by their kinds.
func (r *Renderer) Message(m console.Message) error {
	line := r.paint(m.Kind, m.Text)
	if m.Emphasis != "" {
		line += r.paint(m.EmphasisKind, m.Emphasis)
	}
	_, err := fmt.Fprintln(r.w, line)
	return err
}

// paint leaves KindInfo and unknown kinds uncoloured.
func (r *Renderer) paint(k console.Kind, s string) string {
	c, ok := r.kinds[k]
	if !ok {
		return s
	}
	return c.Sprint(s)
}

// Snapshot writes the buffer state line.
func (r *Renderer) Snapshot(slots []ring.Slot[int]) error {
	cells := make([]string, len(slots))
	for i, s := range slots {
		if s.Occupied {
			cells[i] = r.occupied.Sprint(console.Cell(s))
		} else {
			cells[i] = r.empty.Sprint(console.Cell(s))
		}
	}
	_, err := fmt.Fprintln(r.w, console.SnapshotPrefix+strings.Join(cells, " "))
	return err
}

// Lines writes plain lines, preceded by a blank line.
func (r *Renderer) Lines(lines []string) error {
	if _, err := fmt.Fprintln(r.w); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(r.w, l); err != nil {
			return err
		}
	}
	return nil
}
