package tcp

import (
	"net"
	"sync"
)

// lineWriter frames outbound protocol lines over a net.Conn. The mutex
// serializes writers: broadcasts issued by other connections' handlers
// share this connection.
type lineWriter struct {
	mu   sync.Mutex
	conn net.Conn
}

func newLineWriter(conn net.Conn) *lineWriter {
	return &lineWriter{conn: conn}
}

func (w *lineWriter) WriteLine(line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := w.conn.Write([]byte(line + "\n"))
	return err
}

func (w *lineWriter) Close() error {
	return w.conn.Close()
}
