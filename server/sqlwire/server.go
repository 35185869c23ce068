package sqlwire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/tuannm99/tinysql/internal/engine"
	"github.com/tuannm99/tinysql/internal/sql/executor"
)

type ServerConfig struct {
	Addr string
}

// Server serves one shared Database; every connection is its own session
// with its own Executor. Statements from different sessions serialize on the
// database lock.
type Server struct {
	cfg ServerConfig
	db  *engine.Database
}

func NewServer(cfg ServerConfig, db *engine.Database) *Server {
	return &Server{cfg: cfg, db: db}
}

// Run listens on cfg.Addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled. ln is closed on
// return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer func() { _ = ln.Close() }()

	slog.Info("sqlwire: server listening", "addr", ln.Addr().String())

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			slog.Warn("sqlwire: accept", "err", err)
			continue
		}
		go s.ServeConn(ctx, conn)
	}
}

// ServeConn runs one session until the peer disconnects, a frame is
// malformed or ctx is cancelled.
func (s *Server) ServeConn(ctx context.Context, conn net.Conn) {
	defer func() { _ = conn.Close() }()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	remote := conn.RemoteAddr().String()
	slog.Info("sqlwire: session opened", "remote", remote)

	ex := executor.NewExecutor(s.db)
	for {
		var req ExecuteRequest
		if err := ReadFrame(conn, &req); err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				slog.Warn("sqlwire: session dropped", "remote", remote, "err", err)
			}
			slog.Info("sqlwire: session closed", "remote", remote)
			return
		}

		results, err := ex.ExecSQL(req.SQL)
		resp := ExecuteResponse{
			ID:      req.ID,
			Results: results,
			Error:   FromError(err),
		}
		if err := WriteFrame(conn, resp); err != nil {
			slog.Warn("sqlwire: write response", "remote", remote, "err", err)
			return
		}
	}
}
