package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/session"
)

// SessionDir is where file-backed sessions live, relative to the workspace.
func (w *Workspace) SessionDir() string {
	return filepath.Join(w.Config.Dir, file.DefaultSessionDir)
}

// Sessions opens the session manager of the workspace. Sessions persist in
// redis when Config.RedisURL is set, and under SessionDir otherwise. With
// Config.SessionKey set they are sealed at rest.
func (w *Workspace) Sessions(ttl time.Duration) (*session.Manager, error) {
	store, locker, err := w.sessionStore(ttl, file.NewStore(w.SessionDir()))
	if err != nil {
		return nil, err
	}
	return w.newManager(store, locker), nil
}

// serverSessions is Sessions for long-running servers, which keep sessions
// in memory without redis.
func (w *Workspace) serverSessions(ttl time.Duration) (*session.Manager, error) {
	store, locker, err := w.sessionStore(ttl, memory.NewStore())
	if err != nil {
		return nil, err
	}
	return w.newManager(store, locker), nil
}

func (w *Workspace) sessionStore(ttl time.Duration, fallback ports.SessionStore) (ports.SessionStore, ports.DistributedLocker, error) {
	var mws []middleware.Middleware
	if w.Config.SessionKey != "" {
		key, err := middleware.ParseKey(w.Config.SessionKey)
		if err != nil {
			return nil, nil, err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}

	if w.Config.RedisURL == "" {
		return middleware.Chain(fallback, mws...), nil, nil
	}
	store, err := redis.New(w.Config.RedisURL, redis.WithTTL(ttl))
	if err != nil {
		return nil, nil, err
	}
	w.Logger.Info("using redis session store", "ttl", ttl)
	return middleware.Chain(store, mws...), redis.NewLocker(store.Client(), "turing:"), nil
}

func (w *Workspace) newManager(store ports.SessionStore, locker ports.DistributedLocker) *session.Manager {
	opts := []session.Option{session.WithLogger(w.Logger)}
	if locker != nil {
		opts = append(opts, session.WithLocker(locker))
	}
	return session.NewManager(store, w.Registry, opts...)
}

// PrintSession writes a human summary of s: its status line and the
// current configuration.
func PrintSession(w io.Writer, s *domain.Session) {
	fmt.Fprintf(w, "%s  %s on %q\n", s.ID, s.Machine, s.Input)
	fmt.Fprintf(w, "status: %s after %d steps\n", s.Status, s.Steps)
	if s.Reason != "" {
		fmt.Fprintf(w, "reason: %s\n", s.Reason)
	}
	fmt.Fprintln(w, s.Configuration.Render())
}

// PrintSessionJSON writes s as indented JSON.
func PrintSessionJSON(w io.Writer, s *domain.Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
