package core

import (
	"strings"

	"npchat/internal/proto"
)

// SetNick registers or changes a session's nickname. The old mapping is
// dropped, the new one inserted and any room ownership records carrying
// the old nickname rewritten, all in one critical section. Advances
// CONNECTED sessions to REGISTERED; a session already in a room keeps
// its state.
func (h *Hub) SetNick(s *Session, raw string) *CoreError {
	nick := strings.TrimSpace(raw)
	if nick == "" {
		return errBadFormat("empty nick not allowed")
	}

	h.mu.Lock()
	if existing, ok := h.nicks[nick]; ok && existing != s {
		h.mu.Unlock()
		return coreError(proto.CodeNickInUse, "nick already in use")
	}

	oldNick := s.nick
	if oldNick != "" {
		delete(h.nicks, oldNick)
	}
	s.nick = nick
	h.nicks[nick] = s
	if s.state == StateConnected {
		s.state = StateRegistered
	}
	// Ownership is keyed by nickname, so a rename must chase it.
	if oldNick != "" {
		for room, owner := range h.owners {
			if owner == oldNick {
				h.owners[room] = nick
			}
		}
	}
	h.mu.Unlock()

	h.send(s, proto.Join(proto.ReplyNickOK, nick))
	h.log.Info().Str("remote", s.Remote).Str("nick", nick).Msg("nick set")
	return nil
}
