package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/google/uuid"
)

// ErrHalted is returned when stepping a session that already accepted or rejected.
var ErrHalted = errors.New("session halted")

const defaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager runs machines one step at a time on behalf of clients, persisting
// every session between calls. Operations on the same session are
// serialized; locks are reference counted so idle sessions hold none.
type Manager struct {
	store    ports.SessionStore
	machines ports.MachineProvider

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking, for stores shared across processes.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks. Defaults to 30s.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithClock overrides the time source used for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a session manager over store, resolving machines by
// name through machines.
func NewManager(store ports.SessionStore, machines ports.MachineProvider, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		machines: machines,
		locks:    make(map[string]*lockEntry),
		lockTTL:  defaultLockTTL,
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu, and call release after unlocking it.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// Start creates a session positioned at the initial configuration of the
// named machine and persists it.
func (m *Manager) Start(ctx context.Context, machine, input string) (*domain.Session, error) {
	mach, err := m.machines.Machine(ctx, machine)
	if err != nil {
		return nil, err
	}
	cfg, err := mach.Start(input)
	if err != nil {
		return nil, err
	}

	now := m.now()
	s := &domain.Session{
		ID:            uuid.NewString(),
		Machine:       machine,
		Input:         input,
		Configuration: cfg,
		Status:        domain.SessionRunning,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if mach.IsFinal(cfg) {
		s.Status = domain.SessionAccepted
	}

	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	m.logger.Debug("session started", "session_id", s.ID, "machine", machine)
	return s, nil
}

// Step advances the session by up to n transitions and persists it.
// It stops early when the machine accepts or rejects. A rejection is
// recorded on the session, not returned as an error. Stepping a halted
// session returns ErrHalted along with the unchanged session.
func (m *Manager) Step(ctx context.Context, id string, n int) (*domain.Session, error) {
	if n < 1 {
		n = 1
	}

	var s *domain.Session
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		s, err = m.store.Load(ctx, id)
		if err != nil {
			return err
		}
		if s.Halted() {
			return ErrHalted
		}

		mach, err := m.machines.Machine(ctx, s.Machine)
		if err != nil {
			return err
		}

		advance(mach, s, n)
		s.UpdatedAt = m.now()
		if err := m.store.Save(ctx, s); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
	if err != nil {
		return s, err
	}
	if s.Halted() {
		m.logger.Debug("session halted", "session_id", id, "status", s.Status, "steps", s.Steps)
	}
	return s, nil
}

// advance applies up to n transitions to s in place. Sessions span many
// calls and processes, so run hooks (and the metrics built on them) do not
// observe them.
func advance(mach *turing.Machine, s *domain.Session, n int) {
	for range n {
		res := mach.Step(s.Configuration)
		switch res.Outcome {
		case turing.StepReject:
			res.Rejection.Step = s.Steps + 1
			s.Status = domain.SessionRejected
			s.Reason = res.Rejection.Error()
			return
		case turing.StepAccept:
			s.Configuration = res.Configuration
			s.Steps++
			s.Status = domain.SessionAccepted
			return
		default:
			s.Configuration = res.Configuration
			s.Steps++
		}
	}
}

// Load retrieves a session from the store.
func (m *Manager) Load(ctx context.Context, id string) (*domain.Session, error) {
	var s *domain.Session
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		s, err = m.store.Load(ctx, id)
		return err
	})
	return s, err
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Delete(ctx, id)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// WithLock executes fn while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"session_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
