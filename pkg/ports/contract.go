package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractSession(id string) *domain.Session {
	tape := domain.NewTape("0011", ".").Write("x").Move(domain.Right)
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.Session{
		ID:            id,
		Machine:       "zeros-ones",
		Input:         "0011",
		Configuration: domain.NewConfiguration("q1", tape),
		Steps:         1,
		Status:        domain.SessionRunning,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// RunSessionStoreContract runs a suite of tests to verify that a
// SessionStore implementation adheres to the interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		session := contractSession(sessionID)

		err := store.Save(ctx, session)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, session.Machine, loaded.Machine)
		assert.Equal(t, session.Steps, loaded.Steps)
		assert.Equal(t, session.Status, loaded.Status)
		assert.True(t, session.Configuration.Equal(loaded.Configuration),
			"configuration mismatch: got %s, want %s", loaded.Configuration, session.Configuration)
		assert.True(t, session.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Isolation", func(t *testing.T) {
		session := contractSession(sessionID + "-iso")
		require.NoError(t, store.Save(ctx, session))
		defer func() { _ = store.Delete(ctx, session.ID) }()

		session.Steps = 99
		loaded, err := store.Load(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, loaded.Steps, "mutating a saved session must not change the store")

		loaded.Status = domain.SessionRejected
		again, err := store.Load(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.SessionRunning, again.Status, "mutating a loaded session must not change the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, contractSession(sessionID)))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, contractSession(id1))
		_ = store.Save(ctx, contractSession(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
