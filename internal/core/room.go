package core

import (
	"math/rand/v2"
	"strings"

	"github.com/samber/lo"

	"npchat/internal/proto"
)

// CreateRoom creates a named room with the requester as owner and moves
// the requester into it. A previous room keeps existing with its
// remaining members; it is neither deleted nor re-owned by the move.
func (h *Hub) CreateRoom(s *Session, raw string) *CoreError {
	room := strings.TrimSpace(raw)
	if s.state != StateRegistered && s.state != StateInRoom {
		return coreError(proto.CodeInvalidState, "need REGISTERED state")
	}
	if room == "" {
		return coreError(proto.CodeInvalidRoomName, "empty room name")
	}

	h.mu.Lock()
	if _, exists := h.rooms[room]; exists {
		h.mu.Unlock()
		return coreError(proto.CodeRoomAlreadyExists, "room already exists")
	}

	h.rooms[room] = make(map[*Session]struct{})
	h.owners[room] = s.nick
	h.removeFromRoomLocked(s)
	s.room = room
	s.state = StateInRoom
	h.rooms[room][s] = struct{}{}
	h.mu.Unlock()

	h.send(s, proto.Join(proto.ReplyCreateRoomOK, room))
	h.log.Info().Str("nick", s.nick).Str("room", room).Msg("room created")
	h.broadcastRoom(room, proto.System(s.nick+" created and joined the room"), s)
	return nil
}

// Join moves the requester into an existing room. Joining the room the
// session is already in acknowledges immediately with no mutation and
// no broadcast.
func (h *Hub) Join(s *Session, raw string) *CoreError {
	room := strings.TrimSpace(raw)
	if s.state != StateRegistered && s.state != StateInRoom {
		return coreError(proto.CodeInvalidState, "need REGISTERED state")
	}

	if s.state == StateInRoom && s.room == room {
		h.send(s, proto.Join(proto.ReplyJoinOK, room))
		return nil
	}

	prevRoom := s.room
	h.mu.Lock()
	if _, exists := h.rooms[room]; !exists {
		h.mu.Unlock()
		return coreError(proto.CodeNoSuchRoom, "room does not exist")
	}

	h.removeFromRoomLocked(s)
	s.room = room
	s.state = StateInRoom
	h.rooms[room][s] = struct{}{}
	h.mu.Unlock()

	h.send(s, proto.Join(proto.ReplyJoinOK, room))
	h.log.Info().Str("nick", s.nick).Str("room", room).Msg("room joined")
	if prevRoom != "" && prevRoom != room {
		h.broadcastRoom(prevRoom, proto.System(s.nick+" left the room"), s)
	}
	h.broadcastRoom(room, proto.System(s.nick+" joined the room"), s)
	return nil
}

// Leave removes the requester from its current room and returns it to
// the REGISTERED state. A departing owner hands the room to the first
// remaining member of the snapshot, or the ownership record is cleared
// when nobody is left. The room itself is never deleted here.
func (h *Hub) Leave(s *Session) *CoreError {
	if s.state != StateInRoom || s.room == "" {
		return errNotInRoom()
	}

	h.mu.Lock()
	room := s.room
	if members, ok := h.rooms[room]; ok {
		delete(members, s)
	}
	h.reassignOwnerLocked(room, s.nick)
	s.room = ""
	s.state = StateRegistered
	h.mu.Unlock()

	h.send(s, proto.Join(proto.ReplyLeaveOK, room))
	h.broadcastRoom(room, proto.System(s.nick+" left the room"), s)
	return nil
}

// DeleteRoom lets the owner dissolve its current room. With other
// members present the room survives: one of them, picked uniformly at
// random, becomes the new owner and the requester merely leaves. Only
// when the requester is the last member is the room removed from both
// the membership and ownership maps.
func (h *Hub) DeleteRoom(s *Session) *CoreError {
	if s.state != StateInRoom || s.room == "" {
		return errNotInRoom()
	}

	room := s.room
	var newOwner string

	h.mu.Lock()
	if h.owners[room] != s.nick {
		h.mu.Unlock()
		return coreError(proto.CodeInvalidState, "only the room owner can delete this room")
	}

	members := lo.Keys(h.rooms[room])
	others := lo.Without(members, s)
	if len(others) > 0 {
		target := others[rand.IntN(len(others))]
		newOwner = target.nick
		delete(h.rooms[room], s)
		s.room = ""
		if s.state != StateTerminated {
			s.state = StateRegistered
		}
		h.owners[room] = newOwner
	} else {
		delete(h.rooms, room)
		delete(h.owners, room)
		for _, m := range members {
			m.room = ""
			if m.state != StateTerminated {
				m.state = StateRegistered
			}
		}
	}
	h.mu.Unlock()

	if newOwner != "" {
		h.send(s, proto.System("room still has members; ownership transferred to "+newOwner+" instead of deletion"))
		h.send(s, proto.Join(proto.ReplyLeaveOK, room))
		h.broadcastRoom(room, proto.System(s.nick+" handed ownership to "+newOwner+" and left; the room stays open"), s)
		h.log.Info().Str("nick", s.nick).Str("room", room).Str("new_owner", newOwner).Msg("ownership transferred")
		return nil
	}

	h.send(s, proto.Join(proto.ReplyDeleteRoomOK, room))
	h.log.Info().Str("nick", s.nick).Str("room", room).Msg("room deleted")
	return nil
}

// removeFromRoomLocked drops the session from its current room's member
// set without touching the room's existence or ownership. Caller must
// hold h.mu.
func (h *Hub) removeFromRoomLocked(s *Session) {
	if s.room == "" {
		return
	}
	if members, ok := h.rooms[s.room]; ok {
		delete(members, s)
	}
}
