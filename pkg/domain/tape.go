package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Tape is an immutable snapshot of a two-way extensible tape and its head.
// Every operation returns a new Tape; the receiver is never modified.
type Tape struct {
	cells []Symbol
	head  int
	blank Symbol
}

// NewTape lays the input out from cell 0 with the head on the leftmost cell.
// An empty input yields a single blank cell.
func NewTape(input string, blank Symbol) Tape {
	cells := SplitSymbols(input)
	if len(cells) == 0 {
		cells = []Symbol{blank}
	}
	return Tape{cells: cells, head: 0, blank: blank}
}

// Read returns the symbol under the head.
func (t Tape) Read() Symbol {
	if t.head < 0 || t.head >= len(t.cells) {
		return t.blank
	}
	return t.cells[t.head]
}

// Write returns a tape with the head cell set to s.
func (t Tape) Write(s Symbol) Tape {
	cells := slices.Clone(t.cells)
	cells[t.head] = s
	return Tape{cells: cells, head: t.head, blank: t.blank}
}

// Move returns a tape with the head shifted one cell in direction d.
// Moving off either known end extends the tape with the blank symbol.
func (t Tape) Move(d Direction) Tape {
	switch d {
	case Left:
		if t.head == 0 {
			cells := make([]Symbol, 0, len(t.cells)+1)
			cells = append(cells, t.blank)
			cells = append(cells, t.cells...)
			return Tape{cells: cells, head: 0, blank: t.blank}
		}
		return Tape{cells: t.cells, head: t.head - 1, blank: t.blank}
	case Right:
		if t.head == len(t.cells)-1 {
			// Clip forces append to allocate, so tapes never share growth.
			cells := append(slices.Clip(t.cells), t.blank)
			return Tape{cells: cells, head: t.head + 1, blank: t.blank}
		}
		return Tape{cells: t.cells, head: t.head + 1, blank: t.blank}
	default:
		return t
	}
}

// Head returns the index of the cell under the head.
func (t Tape) Head() int { return t.head }

// Blank returns the tape's blank symbol.
func (t Tape) Blank() Symbol { return t.blank }

// Cells returns a copy of the known cells.
func (t Tape) Cells() []Symbol { return slices.Clone(t.cells) }

// Content returns the known cells as one string.
func (t Tape) Content() string {
	var sb strings.Builder
	for _, c := range t.cells {
		sb.WriteString(string(c))
	}
	return sb.String()
}

// Equal compares contents, head position and blank symbol.
func (t Tape) Equal(other Tape) bool {
	return t.head == other.head && t.blank == other.blank && slices.Equal(t.cells, other.cells)
}

func (t Tape) String() string {
	return fmt.Sprintf("Tape(%q, %q, %d)", t.Content(), string(t.blank), t.head)
}

// Render returns the tape contents with a caret under the head cell.
func (t Tape) Render() string {
	return t.Content() + "\n" + strings.Repeat(" ", t.head) + "^"
}

type tapeJSON struct {
	Cells []Symbol `json:"cells"`
	Head  int      `json:"head"`
	Blank Symbol   `json:"blank"`
}

func (t Tape) MarshalJSON() ([]byte, error) {
	return json.Marshal(tapeJSON{Cells: t.cells, Head: t.head, Blank: t.blank})
}

func (t *Tape) UnmarshalJSON(data []byte) error {
	var raw tapeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Cells) == 0 {
		raw.Cells = []Symbol{raw.Blank}
	}
	if raw.Head < 0 || raw.Head >= len(raw.Cells) {
		return fmt.Errorf("tape head %d out of range [0, %d)", raw.Head, len(raw.Cells))
	}
	*t = Tape{cells: raw.Cells, head: raw.Head, blank: raw.Blank}
	return nil
}
