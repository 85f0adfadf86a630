package domain

import "time"

// SessionStatus tracks a step-by-step execution.
type SessionStatus string

const (
	SessionRunning  SessionStatus = "running"
	SessionAccepted SessionStatus = "accepted"
	SessionRejected SessionStatus = "rejected"
)

// Session is a persisted execution of one machine over one input.
// It is advanced explicitly, one or more steps at a time.
type Session struct {
	ID            string        `json:"id"`
	Machine       string        `json:"machine"`
	Input         string        `json:"input"`
	Configuration Configuration `json:"configuration"`
	Steps         int           `json:"steps"`
	Status        SessionStatus `json:"status"`
	Reason        string        `json:"reason,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Sealed holds the encrypted session when a store seals sessions at
	// rest. The execution fields are empty in that case.
	Sealed string `json:"sealed,omitempty"`
}

// Halted reports whether the session can no longer be stepped.
func (s *Session) Halted() bool {
	return s.Status != SessionRunning
}

// Snapshot returns a copy of the session. Configurations are immutable
// values, so a shallow copy is enough.
func (s *Session) Snapshot() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}
