package registry_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) GetDefinition(ctx context.Context, name string) (domain.Definition, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.Definition), args.Error(1)
}

func (m *MockLoader) ListDefinitions(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func TestRegistry_CachesMachines(t *testing.T) {
	loader := new(MockLoader)
	loader.On("GetDefinition", mock.Anything, "zeros-ones").Return(testutils.ZerosOnes(), nil).Once()

	r := registry.New(loader)
	ctx := context.Background()

	first, err := r.Machine(ctx, "zeros-ones")
	require.NoError(t, err)
	second, err := r.Machine(ctx, "zeros-ones")
	require.NoError(t, err)
	assert.Same(t, first, second)

	r.Invalidate("zeros-ones")
	loader.On("GetDefinition", mock.Anything, "zeros-ones").Return(testutils.ZerosOnes(), nil).Once()
	third, err := r.Machine(ctx, "zeros-ones")
	require.NoError(t, err)
	assert.NotSame(t, first, third)

	loader.AssertExpectations(t)
}

func TestRegistry_InvalidDefinition(t *testing.T) {
	bad := testutils.ZerosOnes()
	bad.InitialState = "nowhere"

	loader, err := memory.NewLoader(bad)
	require.NoError(t, err)
	r := registry.New(loader)

	_, err = r.Machine(context.Background(), "zeros-ones")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	failures, err := r.ValidateAll(context.Background())
	require.NoError(t, err)
	assert.Contains(t, failures, "zeros-ones")
}

func TestRegistry_NotFound(t *testing.T) {
	loader, err := memory.NewLoader()
	require.NoError(t, err)

	_, err = registry.New(loader).Machine(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)

	_, err = registry.New(nil).Machine(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)
}

func TestRegistry_RegisterShadowsLoader(t *testing.T) {
	loader, err := memory.NewLoader(testutils.Looper())
	require.NoError(t, err)
	r := registry.New(loader)

	shadow := testutils.ZerosOnes()
	shadow.Name = "looper"
	_, err = r.Register(shadow)
	require.NoError(t, err)
	_, err = r.Register(testutils.ZerosOnes())
	require.NoError(t, err)

	m, err := r.Machine(context.Background(), "looper")
	require.NoError(t, err)
	assert.Equal(t, domain.State("q0"), m.Definition().InitialState)

	names, err := r.Names(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"looper", "zeros-ones"}, names)

	_, err = r.Register(domain.Definition{})
	assert.Error(t, err)
}

func TestRegistry_Watch(t *testing.T) {
	loader, err := memory.NewLoader(testutils.ZerosOnes())
	require.NoError(t, err)
	r := registry.New(loader)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 1)
	r.OnChange(func(name string) { changed <- name })
	require.NoError(t, r.Watch(ctx))

	before, err := r.Machine(ctx, "zeros-ones")
	require.NoError(t, err)

	updated := testutils.ZerosOnes()
	updated.Description = "updated"
	require.NoError(t, loader.Put(updated))

	select {
	case name := <-changed:
		assert.Equal(t, "zeros-ones", name)
	case <-time.After(time.Second):
		t.Fatal("expected change callback")
	}

	after, err := r.Machine(ctx, "zeros-ones")
	require.NoError(t, err)
	assert.NotSame(t, before, after)
	assert.Equal(t, "updated", after.Definition().Description)
}

func TestRegistry_WatchUnsupported(t *testing.T) {
	r := registry.New(new(MockLoader))
	assert.ErrorIs(t, r.Watch(context.Background()), registry.ErrNotWatchable)
}
