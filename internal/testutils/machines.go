package testutils

import "github.com/aretw0/turing/pkg/domain"

// ZerosOnes returns a six-state machine deciding { 0^n 1^n : n >= 0 }.
//
// q0 marks a 0 as x, q1 runs right to the first 1 and marks it y, q2 runs
// back left; if it meets another 0 it hands over to q5, which returns to q0.
// If q2 reaches an x without seeing a 0, q3 checks that only y's remain
// before the blank and moves to the final state q4.
func ZerosOnes() domain.Definition {
	return domain.Definition{
		Name: "zeros-ones",
		Base: domain.Base{
			States:       []domain.State{"q0", "q1", "q2", "q3", "q4", "q5"},
			InputSymbols: []domain.Symbol{"0", "1"},
			TapeSymbols:  []domain.Symbol{"0", "1", "x", "y", "."},
			InitialState: "q0",
			BlankSymbol:  ".",
			FinalStates:  []domain.State{"q4"},
		},
		Transitions: domain.Transitions{
			"q0": {
				"0": {Next: "q1", Write: "x", Move: domain.Right},
				".": {Next: "q4", Write: ".", Move: domain.NoMove},
			},
			"q1": {
				"0": {Next: "q1", Write: "0", Move: domain.Right},
				"y": {Next: "q1", Write: "y", Move: domain.Right},
				"1": {Next: "q2", Write: "y", Move: domain.Left},
			},
			"q2": {
				"y": {Next: "q2", Write: "y", Move: domain.Left},
				"0": {Next: "q5", Write: "0", Move: domain.Left},
				"x": {Next: "q3", Write: "x", Move: domain.Right},
			},
			"q5": {
				"0": {Next: "q5", Write: "0", Move: domain.Left},
				"x": {Next: "q0", Write: "x", Move: domain.Right},
			},
			"q3": {
				"y": {Next: "q3", Write: "y", Move: domain.Right},
				".": {Next: "q4", Write: ".", Move: domain.NoMove},
			},
		},
	}
}

// Looper returns a machine that walks right forever on any input.
func Looper() domain.Definition {
	return domain.Definition{
		Name: "looper",
		Base: domain.Base{
			States:       []domain.State{"s", "halt"},
			InputSymbols: []domain.Symbol{"a"},
			TapeSymbols:  []domain.Symbol{"a", "_"},
			InitialState: "s",
			BlankSymbol:  "_",
			FinalStates:  []domain.State{"halt"},
		},
		Transitions: domain.Transitions{
			"s": {
				"a": {Next: "s", Write: "a", Move: domain.Right},
				"_": {Next: "s", Write: "_", Move: domain.Right},
			},
		},
	}
}
