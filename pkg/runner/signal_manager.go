package runner

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SignalManager ties a run to SIGINT and SIGTERM, so a machine that never
// halts can be stopped from the terminal and still report its outcome.
type SignalManager struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSignalManager starts listening for signals, deriving from parent.
func NewSignalManager(parent context.Context) *SignalManager {
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	return &SignalManager{ctx: ctx, cancel: cancel}
}

// Context is canceled on the first signal or after Stop.
func (sm *SignalManager) Context() context.Context {
	return sm.ctx
}

// Interrupted reports whether a signal or Stop canceled the context.
func (sm *SignalManager) Interrupted() bool {
	return sm.ctx.Err() != nil
}

// Stop stops listening and cancels the context.
func (sm *SignalManager) Stop() {
	sm.cancel()
}
