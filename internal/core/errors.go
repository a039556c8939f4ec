package core

import "npchat/internal/proto"

// CoreError pairs a protocol error code with a human-readable detail.
// Every rejected command yields exactly one ERROR reply built from it;
// the connection stays usable afterwards.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

func errNeedNick() *CoreError {
	return coreError(proto.CodeNeedNick, "set nick first")
}

func errNotInRoom() *CoreError {
	return coreError(proto.CodeNotInRoom, "you must be in a room")
}

func errBadFormat(msg string) *CoreError {
	return coreError(proto.CodeBadFormat, msg)
}
