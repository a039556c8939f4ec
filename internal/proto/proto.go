// Package proto defines the NP-Chat line protocol: newline-terminated
// UTF-8 text, fields separated by '|'. Inbound lines carry an integer
// message class, a subtype and zero or more arguments.
package proto

import (
	"errors"
	"strconv"
	"strings"
)

// Delim separates fields within one protocol line.
const Delim = "|"

// Message classes.
const (
	ClassControl = 0
	ClassChat    = 1
	ClassInfo    = 2
)

// Control subtypes.
const (
	SubNick       = "NICK"
	SubCreateRoom = "CREATE_ROOM"
	SubJoin       = "JOIN"
	SubLeave      = "LEAVE"
	SubDeleteRoom = "DELETE_ROOM"
	SubQuit       = "QUIT"
)

// Chat subtypes.
const (
	SubRoomMsg = "ROOM_MSG"
	SubDM      = "DM"
)

// Info subtypes.
const (
	SubListUser = "LIST_USER"
	SubListAll  = "LIST_ALL"
)

// Server reply verbs.
const (
	ReplyNickOK       = "NICK_OK"
	ReplyCreateRoomOK = "CREATE_ROOM_OK"
	ReplyJoinOK       = "JOIN_OK"
	ReplyLeaveOK      = "LEAVE_OK"
	ReplyDeleteRoomOK = "DELETE_ROOM_OK"
	ReplySuccess      = "SUCCESS"
	ReplyUserList     = "USER_LIST"
	ReplyUserListAll  = "USER_LIST_ALL"
	ReplyRoomMsg      = "ROOM_MSG"
	ReplyDM           = "DM"
	ReplySystem       = "SYSTEM"
	ReplyError        = "ERROR"
	ReplyInfo         = "INFO"
)

// Error codes carried on ERROR replies. The taxonomy is closed.
const (
	CodeNeedNick          = "NEED_NICK"
	CodeNickInUse         = "NICK_IN_USE"
	CodeNotInRoom         = "NOT_IN_ROOM"
	CodeNoSuchUser        = "NO_SUCH_USER"
	CodeNoSuchRoom        = "NO_SUCH_ROOM"
	CodeRoomAlreadyExists = "ROOM_ALREADY_EXISTS"
	CodeInvalidRoomName   = "INVALID_ROOM_NAME"
	CodeInvalidState      = "INVALID_STATE"
	CodeUnknownType       = "UNKNOWN_TYPE"
	CodeUnknownSubtype    = "UNKNOWN_SUBTYPE"
	CodeBadFormat         = "BAD_FORMAT"
)

var (
	// ErrShortLine reports a line with fewer than class and subtype fields.
	ErrShortLine = errors.New("need TYPE and SUBTYPE")
	// ErrBadClass reports a message class that is not an integer.
	ErrBadClass = errors.New("TYPE must be an integer")
)

// Request is one parsed inbound line.
type Request struct {
	Class   int
	Subtype string
	Fields  []string
}

// Parse splits a raw line into class, subtype and trailing argument fields.
// The caller is responsible for class range and subtype validation.
func Parse(line string) (Request, error) {
	parts := strings.Split(line, Delim)
	if len(parts) < 2 {
		return Request{}, ErrShortLine
	}

	class, err := strconv.Atoi(parts[0])
	if err != nil {
		return Request{}, ErrBadClass
	}

	return Request{
		Class:   class,
		Subtype: parts[1],
		Fields:  parts[2:],
	}, nil
}

// Join assembles an outbound line from its fields.
func Join(fields ...string) string {
	return strings.Join(fields, Delim)
}

// Error formats an ERROR reply for the given code and detail.
func Error(code, detail string) string {
	return Join(ReplyError, code, detail)
}

// System formats a SYSTEM|INFO notice carrying free text.
func System(text string) string {
	return Join(ReplySystem, ReplyInfo, text)
}
