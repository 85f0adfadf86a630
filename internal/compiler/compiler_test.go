package compiler_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func readExample(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "examples", "machines", name))
	require.NoError(t, err)
	return data
}

func TestParseYAML_ExampleMatchesFixture(t *testing.T) {
	def, err := compiler.ParseYAML(readExample(t, "zeros-ones.yaml"))
	require.NoError(t, err)

	want := testutils.ZerosOnes()
	assert.Equal(t, want.Name, def.Name)
	assert.Equal(t, want.Base, def.Base)
	assert.Equal(t, want.Transitions, def.Transitions)
	assert.NotEmpty(t, def.Description)
	assert.NoError(t, validator.Validate(def))
}

func TestParseYAML_MappingFormAndAliases(t *testing.T) {
	def, err := compiler.ParseYAML(readExample(t, "binary-increment.yaml"))
	require.NoError(t, err)

	res, ok := def.Transitions.Lookup("right", "_")
	require.True(t, ok)
	assert.Equal(t, domain.TransitionResult{Next: "carry", Write: "_", Move: domain.Left}, res)

	res, ok = def.Transitions.Lookup("carry", "0")
	require.True(t, ok)
	assert.Equal(t, domain.NoMove, res.Move)
	assert.NoError(t, validator.Validate(def))
}

func TestParseJSON(t *testing.T) {
	def, err := compiler.ParseJSON(readExample(t, "even-as.json"))
	require.NoError(t, err)

	assert.Equal(t, "even-as", def.Name)
	assert.Equal(t, domain.State("even"), def.InitialState)
	res, ok := def.Transitions.Lookup("even", "_")
	require.True(t, ok)
	assert.Equal(t, domain.TransitionResult{Next: "accept", Write: "_", Move: domain.NoMove}, res)
	assert.NoError(t, validator.Validate(def))
}

func TestParse_RoundTrip(t *testing.T) {
	want := testutils.ZerosOnes()

	t.Run("yaml", func(t *testing.T) {
		data, err := yaml.Marshal(want)
		require.NoError(t, err)
		got, err := compiler.Parse(data, compiler.FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(want)
		require.NoError(t, err)
		got, err := compiler.Parse(data, compiler.FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format compiler.Format
		data   string
	}{
		{"empty yaml", compiler.FormatYAML, ""},
		{"empty json", compiler.FormatJSON, ""},
		{"unknown yaml key", compiler.FormatYAML, "states: [a]\nstats: [b]\n"},
		{"unknown json key", compiler.FormatJSON, `{"states":["a"],"finals":["b"]}`},
		{"short tuple", compiler.FormatYAML, "transitions:\n  a:\n    x: [b, x]\n"},
		{"malformed json", compiler.FormatJSON, `{"states":`},
		{"unknown format", compiler.Format("toml"), "states = []"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compiler.Parse([]byte(tt.data), tt.format)
			assert.Error(t, err)
		})
	}

	_, err := compiler.Parse(nil, "toml")
	assert.ErrorIs(t, err, compiler.ErrUnsupportedFormat)
}

func TestParse_KeepsUnknownDirection(t *testing.T) {
	def, err := compiler.ParseYAML([]byte("transitions:\n  a:\n    x: [b, x, up]\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.Direction("up"), def.Transitions["a"]["x"].Move)
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]compiler.Format{
		"m.yaml":    compiler.FormatYAML,
		"dir/m.YML": compiler.FormatYAML,
		"m.json":    compiler.FormatJSON,
	} {
		got, err := compiler.FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got)
	}

	_, err := compiler.FormatFromPath("m.md")
	assert.ErrorIs(t, err, compiler.ErrUnsupportedFormat)
}

func TestDecode(t *testing.T) {
	raw := map[string]any{
		"name":          "zeros-ones",
		"states":        []any{"q0", "q1", "q2", "q3", "q4", "q5"},
		"input_symbols": []any{0, 1},
		"tape_symbols":  []any{json.Number("0"), json.Number("1"), "x", "y", "."},
		"initial_state": "q0",
		"blank_symbol":  ".",
		"final_states":  []any{"q4"},
		"transitions": map[string]any{
			"q0": map[string]any{"0": []any{"q1", "x", "R"}, ".": []any{"q4", ".", "N"}},
			"q1": map[string]any{
				"0": []any{"q1", 0, "right"},
				"y": map[string]any{"next": "q1", "write": "y", "move": "R"},
				"1": []any{"q2", "y", "L"},
			},
			"q2": map[string]any{"y": []any{"q2", "y", "L"}, "0": []any{"q5", "0", "L"}, "x": []any{"q3", "x", "R"}},
			"q5": map[string]any{"0": []any{"q5", "0", "L"}, "x": []any{"q0", "x", "R"}},
			"q3": map[string]any{"y": []any{"q3", "y", "R"}, ".": []any{"q4", ".", "none"}},
		},
	}

	def, err := compiler.Decode(raw)
	require.NoError(t, err)

	want := testutils.ZerosOnes()
	assert.Equal(t, want.Base, def.Base)
	assert.Equal(t, want.Transitions, def.Transitions)
}

func TestDecode_Errors(t *testing.T) {
	_, err := compiler.Decode(map[string]any{"bogus": 1})
	assert.Error(t, err)

	_, err = compiler.Decode(map[string]any{
		"transitions": map[string]any{"a": map[string]any{"x": []any{"b"}}},
	})
	assert.ErrorContains(t, err, "3 elements")
}
