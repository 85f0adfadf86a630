package domain

import (
	"fmt"
	"strings"
)

// Direction tells the tape head where to go after writing.
type Direction string

const (
	Left   Direction = "L" // One cell toward the start of the tape
	Right  Direction = "R" // One cell toward increasing positions
	NoMove Direction = "N" // Head stays on the written cell
)

// ParseDirection accepts the canonical letters and their long forms.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left":
		return Left, nil
	case "r", "right":
		return Right, nil
	case "n", "none", "stay":
		return NoMove, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Valid reports whether d is one of Left, Right or NoMove.
func (d Direction) Valid() bool {
	return d == Left || d == Right || d == NoMove
}

// UnmarshalText normalizes known aliases. Unknown values are kept verbatim
// so that definition validation can report them.
func (d *Direction) UnmarshalText(text []byte) error {
	if parsed, err := ParseDirection(string(text)); err == nil {
		*d = parsed
		return nil
	}
	*d = Direction(text)
	return nil
}
