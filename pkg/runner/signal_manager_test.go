package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalManager_Lifecycle(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	defer cancelParent()

	sm := NewSignalManager(parent)
	ctx := sm.Context()
	assert.NoError(t, ctx.Err())
	assert.False(t, sm.Interrupted())

	sm.Stop()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.True(t, sm.Interrupted())
}

func TestSignalManager_FollowsParent(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	sm := NewSignalManager(parent)
	defer sm.Stop()

	cancelParent()
	<-sm.Context().Done()
	assert.True(t, sm.Interrupted())
}
