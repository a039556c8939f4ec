package core

import (
	"strings"

	"npchat/internal/proto"
)

// ListUsers reports the sender's room and the nicknames of its current
// members. Member order is unspecified.
func (h *Hub) ListUsers(s *Session) *CoreError {
	if s.state != StateInRoom {
		return errNotInRoom()
	}

	h.mu.Lock()
	room := s.room
	names := make([]string, 0, len(h.rooms[room]))
	for m := range h.rooms[room] {
		if m.nick != "" {
			names = append(names, m.nick)
		}
	}
	h.mu.Unlock()

	h.send(s, proto.Join(proto.ReplyUserList, room, strings.Join(names, ",")))
	return nil
}

// ListAll reports the nicknames of every session currently REGISTERED
// or IN_ROOM.
func (h *Hub) ListAll(s *Session) *CoreError {
	if s.state != StateRegistered && s.state != StateInRoom {
		return errNeedNick()
	}

	h.mu.Lock()
	names := make([]string, 0, len(h.nicks))
	for nick, sess := range h.nicks {
		if sess.state == StateRegistered || sess.state == StateInRoom {
			names = append(names, nick)
		}
	}
	h.mu.Unlock()

	h.send(s, proto.Join(proto.ReplyUserListAll, strings.Join(names, ",")))
	return nil
}
