package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	contract "github.com/aretw0/turing/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Contract(t *testing.T) {
	zo, looper := testutils.ZerosOnes(), testutils.Looper()
	loader, err := memory.NewLoader(zo, looper)
	require.NoError(t, err)

	contract.DefinitionLoaderContractTest(t, loader, map[string]domain.Definition{
		zo.Name:     zo,
		looper.Name: looper,
	})
}

func TestNewLoader_Errors(t *testing.T) {
	_, err := memory.NewLoader(domain.Definition{})
	assert.ErrorContains(t, err, "missing name")

	_, err = memory.NewLoader(testutils.Looper(), testutils.Looper())
	assert.ErrorContains(t, err, "duplicate")
}

func TestLoader_ReturnsCopies(t *testing.T) {
	loader, err := memory.NewLoader(testutils.ZerosOnes())
	require.NoError(t, err)
	ctx := context.Background()

	def, err := loader.GetDefinition(ctx, "zeros-ones")
	require.NoError(t, err)
	delete(def.Transitions, "q0")

	again, err := loader.GetDefinition(ctx, "zeros-ones")
	require.NoError(t, err)
	assert.Contains(t, again.Transitions, domain.State("q0"))
}

func TestLoader_Watch(t *testing.T) {
	loader, err := memory.NewLoader()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := loader.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, loader.Put(testutils.Looper()))
	select {
	case name := <-ch:
		assert.Equal(t, "looper", name)
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}

	loader.Remove("looper")
	assert.Equal(t, "looper", <-ch)

	names, err := loader.ListDefinitions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)

	cancel()
	assert.Eventually(t, func() bool {
		_, open := <-ch
		return !open
	}, time.Second, 10*time.Millisecond)
}
