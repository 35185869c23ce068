package sqlclient

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tuannm99/tinysql/internal/sql/executor"
	"github.com/tuannm99/tinysql/server/sqlwire"
)

// Client is a simple synchronous client.
// It locks send/recv so concurrent ExecSQL calls serialize on the connection.
type Client struct {
	conn net.Conn
	mu   sync.Mutex
	id   atomic.Uint64

	// Optional per-request timeout (0 = no timeout).
	rwTimeout time.Duration
}

func Dial(addr string, timeout time.Duration) (*Client, error) {
	return DialContext(context.Background(), addr, timeout)
}

func DialContext(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return NewClient(c), nil
}

// NewClient wraps an established connection.
func NewClient(conn net.Conn) *Client {
	return &Client{conn: conn}
}

// SetRWTimeout sets a per-request read/write deadline.
func (c *Client) SetRWTimeout(d time.Duration) {
	if c == nil {
		return
	}
	c.rwTimeout = d
}

func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// ExecSQL sends one batch. Like the local executor it returns the results of
// the statements that completed together with the error that stopped the
// batch; server-side errors come back as *sqlwire.Error.
func (c *Client) ExecSQL(sql string) ([]*executor.Result, error) {
	return c.ExecSQLContext(context.Background(), sql)
}

func (c *Client) ExecSQLContext(ctx context.Context, sql string) ([]*executor.Result, error) {
	if c == nil || c.conn == nil {
		return nil, fmt.Errorf("sqlclient: nil client")
	}

	reqID := c.id.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.applyDeadline(ctx); err != nil {
		return nil, err
	}
	defer func() {
		// clear so an idle connection doesn't expire
		_ = c.conn.SetDeadline(time.Time{})
	}()

	req := sqlwire.ExecuteRequest{ID: reqID, SQL: sql}
	if err := sqlwire.WriteFrame(c.conn, req); err != nil {
		return nil, err
	}

	var resp sqlwire.ExecuteResponse
	if err := sqlwire.ReadFrame(c.conn, &resp); err != nil {
		return nil, err
	}

	if resp.ID != reqID {
		return nil, fmt.Errorf("sqlclient: response id mismatch: got=%d want=%d", resp.ID, reqID)
	}
	if resp.Error != nil {
		return resp.Results, resp.Error
	}
	return resp.Results, nil
}

func (c *Client) applyDeadline(ctx context.Context) error {
	// context deadline wins over rwTimeout
	if dl, ok := ctx.Deadline(); ok {
		return c.conn.SetDeadline(dl)
	}
	if c.rwTimeout > 0 {
		return c.conn.SetDeadline(time.Now().Add(c.rwTimeout))
	}
	return nil
}
