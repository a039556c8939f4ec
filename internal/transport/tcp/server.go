// Package tcp runs the NP-Chat accept loop and the per-connection
// receive loops that bridge raw sockets to the core hub.
package tcp

import (
	"bufio"
	"context"
	"errors"
	"net"
	"sync"

	"github.com/rs/zerolog"

	"npchat/internal/config"
	"npchat/internal/core"
)

// ErrServerClosed is returned by ListenAndServe after Shutdown.
var ErrServerClosed = errors.New("tcp: server closed")

// maxLineBytes bounds a single inbound protocol line.
const maxLineBytes = 64 * 1024

// Server accepts TCP connections and spawns one handler goroutine per
// connection. When cfg.MaxConns is positive a semaphore caps how many
// handlers run at once; otherwise the loop is unbounded.
type Server struct {
	cfg config.Config
	hub *core.Hub
	log *zerolog.Logger

	mu     sync.Mutex
	ln     net.Listener
	closed bool

	wg  sync.WaitGroup
	sem chan struct{}
}

// NewServer builds a server over the given hub.
func NewServer(cfg config.Config, hub *core.Hub, logger *zerolog.Logger) *Server {
	s := &Server{cfg: cfg, hub: hub, log: logger}
	if cfg.MaxConns > 0 {
		s.sem = make(chan struct{}, cfg.MaxConns)
	}
	return s
}

// ListenAndServe binds the configured address and accepts until
// Shutdown closes the listener. An error on a single connection never
// stops the accept loop.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return ErrServerClosed
	}
	s.ln = ln
	s.mu.Unlock()

	s.log.Info().Str("addr", ln.Addr().String()).Msg("listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return ErrServerClosed
			}
			return err
		}

		if s.sem != nil {
			s.sem <- struct{}{}
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if s.sem != nil {
				defer func() { <-s.sem }()
			}
			s.handle(conn)
		}()
	}
}

// Addr reports the bound listener address, or nil before ListenAndServe
// has bound one. Useful with ":0" in tests.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown closes the listener and every live connection, then waits
// for handler goroutines up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	ln := s.ln
	s.mu.Unlock()

	if ln != nil {
		_ = ln.Close()
	}
	s.hub.CloseAll()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// handle runs one connection's receive loop: attach a session, feed
// each newline-delimited line to the dispatcher, clean up on exit.
// Cleanup also covers sessions terminated by QUIT, whose closed
// connection ends the scan.
func (s *Server) handle(conn net.Conn) {
	sess := core.NewSession(conn.RemoteAddr().String(), newLineWriter(conn))
	s.hub.Attach(sess)
	defer s.hub.Cleanup(sess)

	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for sc.Scan() {
		s.hub.Dispatch(sess, sc.Text())
		if sess.Terminated() {
			break
		}
	}
	if err := sc.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		s.log.Debug().Err(err).Str("remote", sess.Remote).Msg("receive loop ended")
	}
}
