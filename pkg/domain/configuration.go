package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Configuration is an immutable snapshot of execution: control state plus tape.
type Configuration struct {
	State State `json:"state"`
	Tape  Tape  `json:"tape"`
}

// NewConfiguration pairs a state with a tape.
func NewConfiguration(state State, tape Tape) Configuration {
	return Configuration{State: state, Tape: tape}
}

// Equal compares state and tape.
func (c Configuration) Equal(other Configuration) bool {
	return c.State == other.State && c.Tape.Equal(other.Tape)
}

func (c Configuration) String() string {
	return fmt.Sprintf("%s: %s", c.State, c.Tape)
}

// Render prints the state followed by the tape, with a caret under the head.
//
//	q1: x0y1
//	     ^
func (c Configuration) Render() string {
	prefix := fmt.Sprintf("%s: ", c.State)
	lines := strings.SplitN(c.Tape.Render(), "\n", 2)
	pad := strings.Repeat(" ", utf8.RuneCountInString(prefix))
	return prefix + lines[0] + "\n" + pad + lines[1]
}
