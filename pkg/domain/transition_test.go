package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTransitionResult_Decode(t *testing.T) {
	want := TransitionResult{Next: "q1", Write: "x", Move: Right}

	t.Run("JSON tuple", func(t *testing.T) {
		var got TransitionResult
		require.NoError(t, json.Unmarshal([]byte(`["q1", "x", "R"]`), &got))
		assert.Equal(t, want, got)
	})

	t.Run("JSON object with alias", func(t *testing.T) {
		var got TransitionResult
		require.NoError(t, json.Unmarshal([]byte(`{"next": "q1", "write": "x", "move": "right"}`), &got))
		assert.Equal(t, want, got)
	})

	t.Run("JSON tuple wrong arity", func(t *testing.T) {
		var got TransitionResult
		assert.Error(t, json.Unmarshal([]byte(`["q1", "x"]`), &got))
	})

	t.Run("YAML tuple", func(t *testing.T) {
		var got TransitionResult
		require.NoError(t, yaml.Unmarshal([]byte(`[q1, x, R]`), &got))
		assert.Equal(t, want, got)
	})

	t.Run("YAML mapping", func(t *testing.T) {
		var got TransitionResult
		require.NoError(t, yaml.Unmarshal([]byte("next: q1\nwrite: x\nmove: R\n"), &got))
		assert.Equal(t, want, got)
	})

	t.Run("unknown direction kept verbatim", func(t *testing.T) {
		var got TransitionResult
		require.NoError(t, json.Unmarshal([]byte(`["q1", "x", "up"]`), &got))
		assert.Equal(t, Direction("up"), got.Move)
		assert.False(t, got.Move.Valid())
	})
}

func TestTransitions_Lookup(t *testing.T) {
	table := Transitions{
		"q0": {"0": {Next: "q1", Write: "x", Move: Right}},
	}

	res, ok := table.Lookup("q0", "0")
	assert.True(t, ok)
	assert.Equal(t, State("q1"), res.Next)

	_, ok = table.Lookup("q0", "1")
	assert.False(t, ok)
	_, ok = table.Lookup("q9", "0")
	assert.False(t, ok)
}

func TestTransitions_Clone(t *testing.T) {
	table := Transitions{"q0": {"0": {Next: "q1", Write: "x", Move: Right}}}
	cp := table.Clone()
	cp["q0"]["0"] = TransitionResult{Next: "q2", Write: "y", Move: Left}

	assert.Equal(t, State("q1"), table["q0"]["0"].Next)
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{"L": Left, "left": Left, "R": Right, "Right": Right, "N": NoMove, "stay": NoMove} {
		got, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDirection("up")
	assert.Error(t, err)
}

func TestParseSymbol(t *testing.T) {
	s, err := ParseSymbol("ä")
	require.NoError(t, err)
	assert.Equal(t, Symbol("ä"), s)

	_, err = ParseSymbol("ab")
	assert.Error(t, err)
	_, err = ParseSymbol("")
	assert.Error(t, err)
}
