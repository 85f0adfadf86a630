package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/domain"
	contract "github.com/aretw0/turing/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const looperJSON = `{
  "states": ["s", "halt"],
  "input_symbols": ["a"],
  "tape_symbols": ["a", "_"],
  "initial_state": "s",
  "blank_symbol": "_",
  "final_states": ["halt"],
  "transitions": {"s": {"a": ["s", "a", "R"], "_": ["s", "_", "R"]}}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func setupDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	data, err := yaml.Marshal(testutils.ZerosOnes())
	require.NoError(t, err)
	writeFile(t, dir, "zo.yaml", string(data))
	writeFile(t, dir, "nested/looper.json", looperJSON)
	writeFile(t, dir, "broken.yml", "states: [\n")
	writeFile(t, dir, "README.md", "# not a machine")
	writeFile(t, dir, ".hidden/other.yaml", "name: hidden\n")
	return dir
}

func TestLoader_Contract(t *testing.T) {
	loader, err := file.New(setupDir(t))
	require.NoError(t, err)

	contract.DefinitionLoaderContractTest(t, loader, map[string]domain.Definition{
		"zeros-ones": testutils.ZerosOnes(),
		"looper":     testutils.Looper(),
	})
}

func TestLoader_Collision(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a/looper.json", looperJSON)
	writeFile(t, dir, "b/looper.json", looperJSON)

	loader, err := file.New(dir)
	require.NoError(t, err)

	_, err = loader.ListDefinitions(context.Background())
	assert.ErrorContains(t, err, "collision detected")
}

func TestNew_Errors(t *testing.T) {
	_, err := file.New(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	path := writeFile(t, t.TempDir(), "m.yaml", "name: m\n")
	_, err = file.New(path)
	assert.ErrorContains(t, err, "not a directory")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "looper.json", looperJSON)

	def, err := file.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "looper", def.Name)

	_, err = file.LoadFile(filepath.Join("..", "..", "..", "examples", "machines", "zeros-ones.yaml"))
	assert.NoError(t, err)

	_, err = file.LoadFile(writeFile(t, dir, "m.toml", ""))
	assert.Error(t, err)
}

func TestLoader_Watch(t *testing.T) {
	dir := t.TempDir()
	loader, err := file.New(dir, file.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := loader.Watch(ctx)
	require.NoError(t, err)

	writeFile(t, dir, "looper.json", looperJSON)
	writeFile(t, dir, "notes.txt", "ignored")

	select {
	case name := <-ch:
		assert.Equal(t, "looper", name)
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, open := <-ch:
			return !open
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
