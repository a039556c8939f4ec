package core

import "npchat/internal/proto"

// RoomMessage broadcasts a chat line to every current member of the
// sender's room, including the sender. Unlike the management notices,
// chat broadcasts never exclude the actor.
func (h *Hub) RoomMessage(s *Session, text string) *CoreError {
	room := s.room
	if room == "" {
		return coreError(proto.CodeNotInRoom, "no room assigned")
	}

	h.broadcastRoom(room, proto.Join(proto.ReplyRoomMsg, room, s.nick, text), nil)
	return nil
}

// DirectMessage delivers text to the session holding toNick and
// acknowledges the sender separately. The recipient does not need to
// share a room with the sender.
func (h *Hub) DirectMessage(s *Session, toNick, text string) *CoreError {
	h.mu.Lock()
	target := h.nicks[toNick]
	h.mu.Unlock()

	if target == nil {
		return coreError(proto.CodeNoSuchUser, "no such user")
	}

	h.send(target, proto.Join(proto.ReplyDM, s.nick, text))
	h.send(s, proto.Join(proto.ReplySuccess, proto.ReplyDM, toNick))
	return nil
}
