package core

import (
	"errors"
	"fmt"
	"strings"

	"npchat/internal/proto"
)

// Dispatch parses one inbound line, enforces session-state gating and
// routes to the matching operation. Precondition violations produce
// exactly one ERROR reply; the connection stays open.
func (h *Hub) Dispatch(s *Session, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	req, err := proto.Parse(line)
	switch {
	case errors.Is(err, proto.ErrShortLine):
		h.sendError(s, errBadFormat("need TYPE and SUBTYPE"))
		return
	case errors.Is(err, proto.ErrBadClass):
		h.sendError(s, coreError(proto.CodeUnknownType, "TYPE must be an integer"))
		return
	}

	// Until a nickname is set, NICK is the only accepted command.
	if s.state == StateConnected && !(req.Class == proto.ClassControl && req.Subtype == proto.SubNick) {
		h.sendError(s, errNeedNick())
		return
	}

	switch req.Class {
	case proto.ClassControl:
		h.sendError(s, h.dispatchControl(s, req))
	case proto.ClassChat:
		h.sendError(s, h.dispatchChat(s, req))
	case proto.ClassInfo:
		h.sendError(s, h.dispatchInfo(s, req))
	default:
		h.sendError(s, coreError(proto.CodeUnknownType, fmt.Sprintf("unknown TYPE: %d", req.Class)))
	}
}

func (h *Hub) dispatchControl(s *Session, req proto.Request) *CoreError {
	switch req.Subtype {
	case proto.SubNick:
		if len(req.Fields) != 1 {
			return errBadFormat("NICK requires 1 field")
		}
		return h.SetNick(s, req.Fields[0])
	case proto.SubCreateRoom:
		if len(req.Fields) != 1 {
			return errBadFormat("CREATE_ROOM requires room name")
		}
		return h.CreateRoom(s, req.Fields[0])
	case proto.SubJoin:
		if len(req.Fields) != 1 {
			return errBadFormat("JOIN requires room name")
		}
		return h.Join(s, req.Fields[0])
	case proto.SubLeave:
		return h.Leave(s)
	case proto.SubDeleteRoom:
		return h.DeleteRoom(s)
	case proto.SubQuit:
		h.Quit(s)
		return nil
	default:
		return coreError(proto.CodeUnknownSubtype, "unknown control subtype: "+req.Subtype)
	}
}

func (h *Hub) dispatchChat(s *Session, req proto.Request) *CoreError {
	if s.state != StateInRoom {
		return errNotInRoom()
	}

	switch req.Subtype {
	case proto.SubRoomMsg:
		if len(req.Fields) != 1 {
			return errBadFormat("ROOM_MSG requires message")
		}
		return h.RoomMessage(s, req.Fields[0])
	case proto.SubDM:
		if len(req.Fields) != 2 {
			return errBadFormat("DM requires toNick and message")
		}
		return h.DirectMessage(s, req.Fields[0], req.Fields[1])
	default:
		return coreError(proto.CodeUnknownSubtype, "unknown chat subtype: "+req.Subtype)
	}
}

func (h *Hub) dispatchInfo(s *Session, req proto.Request) *CoreError {
	switch req.Subtype {
	case proto.SubListUser:
		if len(req.Fields) != 0 {
			return errBadFormat("LIST_USER takes no args")
		}
		return h.ListUsers(s)
	case proto.SubListAll:
		if len(req.Fields) != 0 {
			return errBadFormat("LIST_ALL takes no args")
		}
		return h.ListAll(s)
	default:
		return coreError(proto.CodeUnknownSubtype, "unknown info subtype: "+req.Subtype)
	}
}

// Quit sends the farewell notice, marks the session terminated and
// closes its connection; the receive loop then exits and runs Cleanup.
func (h *Hub) Quit(s *Session) {
	h.send(s, proto.System("Bye"))

	h.mu.Lock()
	s.state = StateTerminated
	h.mu.Unlock()

	_ = s.w.Close()
}

func (h *Hub) sendError(s *Session, cerr *CoreError) {
	if cerr == nil {
		return
	}
	h.send(s, proto.Error(cerr.Code, cerr.Message))
}
