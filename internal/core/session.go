package core

import "github.com/google/uuid"

// State captures where a session is in its lifecycle.
type State int

const (
	// StateConnected is the initial state; only NICK is accepted.
	StateConnected State = iota
	// StateRegistered means a nickname is set but no room joined.
	StateRegistered
	// StateInRoom means the session is a member of exactly one room.
	StateInRoom
	// StateTerminated is terminal: quit or connection loss.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "CONNECTED"
	case StateRegistered:
		return "REGISTERED"
	case StateInRoom:
		return "IN_ROOM"
	case StateTerminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// LineWriter delivers one protocol line to the peer. Implementations must
// be safe for concurrent use: broadcasts from other sessions' handlers
// write to the same peer.
type LineWriter interface {
	WriteLine(line string) error
	Close() error
}

// Session is the server-side record for one live connection. The nick,
// state and room fields mutate only under the hub lock; the writer is
// set once at construction and used lock-free.
type Session struct {
	ID     string
	Remote string

	w LineWriter

	nick  string
	state State
	room  string
}

// NewSession builds a session in the CONNECTED state.
func NewSession(remote string, w LineWriter) *Session {
	return &Session{
		ID:     uuid.NewString(),
		Remote: remote,
		w:      w,
		state:  StateConnected,
	}
}

// Terminated reports whether the session reached its terminal state.
// Only the session's own handler goroutine transitions it there, so the
// handler may call this between commands without the hub lock.
func (s *Session) Terminated() bool {
	return s.state == StateTerminated
}
