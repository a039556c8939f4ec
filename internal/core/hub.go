package core

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"npchat/internal/proto"
)

// Hub owns every piece of shared chat state: the live session set, the
// nickname registry, room membership and room ownership. One mutex
// guards all four maps; any operation touching more than one runs as a
// single critical section. Network writes always happen after the lock
// is released; broadcasts deliver to a snapshot of the membership taken
// under the lock.
type Hub struct {
	mu       sync.Mutex
	sessions map[*Session]struct{}
	nicks    map[string]*Session
	rooms    map[string]map[*Session]struct{}
	// owners maps room name to the owning nickname. A nickname string,
	// not a session reference: renames rewrite it explicitly.
	owners map[string]string

	log *zerolog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		sessions: make(map[*Session]struct{}),
		nicks:    make(map[string]*Session),
		rooms:    make(map[string]map[*Session]struct{}),
		owners:   make(map[string]string),
		log:      logger,
	}
}

// Attach registers a freshly accepted session with the hub.
func (h *Hub) Attach(s *Session) {
	h.mu.Lock()
	h.sessions[s] = struct{}{}
	h.mu.Unlock()

	h.log.Info().Str("session", s.ID).Str("remote", s.Remote).Msg("session attached")
}

// send writes one line to a session. Delivery failures are logged and
// swallowed: an unreachable peer never aborts the caller's operation.
func (h *Hub) send(s *Session, line string) {
	if err := s.w.WriteLine(line); err != nil {
		h.log.Warn().Err(err).Str("session", s.ID).Msg("send failed")
	}
}

// broadcastRoom delivers a line to every member of a room except the
// excluded session. Membership is snapshotted under the lock; delivery
// happens outside it, so the recipient set reflects the instant of the
// snapshot only.
func (h *Hub) broadcastRoom(room, line string, exclude *Session) {
	h.mu.Lock()
	members := lo.Keys(h.rooms[room])
	h.mu.Unlock()

	for _, m := range members {
		if m == exclude {
			continue
		}
		h.send(m, line)
	}
}

// Cleanup tears a session down: room membership, ownership and nickname
// records are removed under one lock, then the departure notice goes out
// to any remaining room members. Safe to call for sessions that never
// registered a nickname or joined a room, and safe to call twice.
func (h *Hub) Cleanup(s *Session) {
	var notifyRoom string

	h.mu.Lock()
	if s.room != "" {
		if members, ok := h.rooms[s.room]; ok {
			if _, in := members[s]; in {
				delete(members, s)
				notifyRoom = s.room
				h.reassignOwnerLocked(s.room, s.nick)
			}
		}
	}
	if s.nick != "" {
		if cur, ok := h.nicks[s.nick]; ok && cur == s {
			delete(h.nicks, s.nick)
		}
	}
	delete(h.sessions, s)
	nick := s.nick
	s.room = ""
	s.state = StateTerminated
	h.mu.Unlock()

	if notifyRoom != "" {
		h.broadcastRoom(notifyRoom, proto.System(nick+" left the room"), s)
	}

	_ = s.w.Close()
	h.log.Info().Str("session", s.ID).Str("nick", nick).Msg("session cleaned up")
}

// reassignOwnerLocked hands ownership of room to any remaining member
// when the departing owner's nickname matches, or clears the record if
// the room is now empty. Caller must hold h.mu.
func (h *Hub) reassignOwnerLocked(room, departingNick string) {
	if h.owners[room] != departingNick {
		return
	}
	for m := range h.rooms[room] {
		h.owners[room] = m.nick
		return
	}
	delete(h.owners, room)
}

// CloseAll closes every live session's connection. Used on shutdown so
// per-connection receive loops unblock and exit.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	sessions := lo.Keys(h.sessions)
	h.mu.Unlock()

	for _, s := range sessions {
		_ = s.w.Close()
	}
}
