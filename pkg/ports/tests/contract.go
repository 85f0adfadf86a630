package tests

import (
	"context"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DefinitionLoaderContractTest is a reusable test suite that verifies if an
// adapter complies with ports.DefinitionLoader. want maps every name the
// loader is expected to expose to its definition.
func DefinitionLoaderContractTest(t *testing.T, loader ports.DefinitionLoader, want map[string]domain.Definition) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetDefinition_Success", func(t *testing.T) {
		for name, expected := range want {
			got, err := loader.GetDefinition(ctx, name)
			require.NoError(t, err, "getting %s", name)
			assert.Equal(t, name, got.Name)
			assert.Equal(t, expected.Base, got.Base, "base mismatch for %s", name)
			assert.Equal(t, expected.Transitions, got.Transitions, "transitions mismatch for %s", name)
		}
	})

	t.Run("GetDefinition_NotFound", func(t *testing.T) {
		_, err := loader.GetDefinition(ctx, "non-existent-machine")
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
	})

	t.Run("ListDefinitions", func(t *testing.T) {
		names, err := loader.ListDefinitions(ctx)
		require.NoError(t, err)

		expected := make([]string, 0, len(want))
		for name := range want {
			expected = append(expected, name)
		}
		assert.ElementsMatch(t, expected, names)
		assert.IsNonDecreasing(t, names)
	})
}
