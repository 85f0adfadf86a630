package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/registry"
	"github.com/aretw0/turing/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	data map[string]*domain.Session
	mu   sync.Mutex
}

func (s *SlowStore) Save(ctx context.Context, sess *domain.Session) error {
	time.Sleep(2 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string]*domain.Session)
	}
	s.data[sess.ID] = sess.Snapshot()
	return nil
}

func (s *SlowStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	time.Sleep(2 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.data[id]; ok {
		return sess.Snapshot(), nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *SlowStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

func newManager(t *testing.T, store ports.SessionStore, opts ...session.Option) *session.Manager {
	t.Helper()
	loader, err := memory.NewLoader(testutils.ZerosOnes(), testutils.Looper())
	require.NoError(t, err)
	return session.NewManager(store, registry.New(loader), opts...)
}

func TestManager_StepToAcceptance(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mgr := newManager(t, memory.NewStore(), session.WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	s, err := mgr.Start(ctx, "zeros-ones", "01")
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, domain.SessionRunning, s.Status)
	assert.Equal(t, domain.State("q0"), s.Configuration.State)
	assert.Equal(t, fixed, s.CreatedAt)

	s, err = mgr.Step(ctx, s.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Steps)
	assert.Equal(t, domain.SessionRunning, s.Status)

	s, err = mgr.Step(ctx, s.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Steps)
	assert.Equal(t, domain.SessionAccepted, s.Status)
	assert.Equal(t, domain.State("q4"), s.Configuration.State)

	_, err = mgr.Step(ctx, s.ID, 1)
	assert.ErrorIs(t, err, session.ErrHalted)

	loaded, err := mgr.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Steps)
}

func TestManager_StepToRejection(t *testing.T) {
	mgr := newManager(t, memory.NewStore())
	ctx := context.Background()

	s, err := mgr.Start(ctx, "zeros-ones", "10")
	require.NoError(t, err)

	s, err = mgr.Step(ctx, s.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionRejected, s.Status)
	assert.Equal(t, 0, s.Steps)
	assert.Contains(t, s.Reason, "(q0, 1) at step 1")
}

func TestManager_StartErrors(t *testing.T) {
	mgr := newManager(t, memory.NewStore())
	ctx := context.Background()

	_, err := mgr.Start(ctx, "missing", "01")
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)

	_, err = mgr.Start(ctx, "zeros-ones", "012")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = mgr.Step(ctx, "nope", 1)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_ConcurrentSteps(t *testing.T) {
	mgr := newManager(t, &SlowStore{})
	ctx := context.Background()

	s, err := mgr.Start(ctx, "looper", "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	const workers = 10
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := mgr.Step(ctx, s.ID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Without serialization, read-modify-write cycles would lose steps.
	final, err := mgr.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, workers, final.Steps)
	assert.Equal(t, workers, final.Configuration.Tape.Head())
}

func TestManager_DeleteAndList(t *testing.T) {
	mgr := newManager(t, memory.NewStore())
	ctx := context.Background()

	a, err := mgr.Start(ctx, "zeros-ones", "0011")
	require.NoError(t, err)
	b, err := mgr.Start(ctx, "looper", "a")
	require.NoError(t, err)

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)

	require.NoError(t, mgr.Delete(ctx, a.ID))
	_, err = mgr.Load(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
