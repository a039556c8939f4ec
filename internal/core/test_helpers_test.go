package core

import (
	"errors"
	"sync"
	"testing"
)

// fakeConn records every line the hub writes to a session.
type fakeConn struct {
	mu     sync.Mutex
	lines  []string
	closed bool
}

func (c *fakeConn) WriteLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("connection closed")
	}
	c.lines = append(c.lines, line)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// take drains and returns everything received so far.
func (c *fakeConn) take() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.lines
	c.lines = nil
	return out
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func newTestHub() *Hub {
	return NewHub(nil)
}

// connect attaches a fresh session as a bare connection.
func connect(h *Hub) (*Session, *fakeConn) {
	conn := &fakeConn{}
	s := NewSession("test", conn)
	h.Attach(s)
	return s, conn
}

// register attaches a session and claims a nickname for it.
func register(t *testing.T, h *Hub, nick string) (*Session, *fakeConn) {
	t.Helper()
	s, conn := connect(h)
	if cerr := h.SetNick(s, nick); cerr != nil {
		t.Fatalf("SetNick(%q): %v", nick, cerr)
	}
	conn.take()
	return s, conn
}

func lastLine(t *testing.T, c *fakeConn) string {
	t.Helper()
	lines := c.snapshot()
	if len(lines) == 0 {
		t.Fatal("no lines received")
	}
	return lines[len(lines)-1]
}
