package sqlclient

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/tinysql/internal/engine"
	"github.com/tuannm99/tinysql/internal/sql/executor"
	"github.com/tuannm99/tinysql/server/sqlwire"
)

func newPipeClient(t *testing.T) *Client {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	cconn, sconn := net.Pipe()

	srv := sqlwire.NewServer(sqlwire.ServerConfig{}, engine.NewDatabase())
	done := make(chan struct{})
	go func() {
		srv.ServeConn(ctx, sconn)
		close(done)
	}()

	c := NewClient(cconn)
	t.Cleanup(func() {
		cancel()
		_ = c.Close()
		<-done
	})
	return c
}

func TestClient_ExecSQL(t *testing.T) {
	c := newPipeClient(t)
	c.SetRWTimeout(2 * time.Second)

	res, err := c.ExecSQL("create table users (id id, name char255); insert into users values ('ann');")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, executor.ResultCreated, res[0].Kind)
	assert.Equal(t, executor.ResultInserted, res[1].Kind)
	require.NotNil(t, res[1].ID)
	assert.Equal(t, uint64(1), *res[1].ID)

	res, err = c.ExecSQL("select name from users")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, []string{"name"}, res[0].Columns)
	assert.Equal(t, [][]any{{"ann"}}, res[0].Rows)
}

func TestClient_PartialResultsAndStructuredError(t *testing.T) {
	c := newPipeClient(t)

	res, err := c.ExecSQL("create table t (v int8); insert into t values (128);")
	require.Error(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, executor.ResultCreated, res[0].Kind)

	var we *sqlwire.Error
	require.True(t, errors.As(err, &we))
	assert.Equal(t, sqlwire.FamilyExecution, we.Family)
	assert.Equal(t, "TypeMismatch", we.Kind)
	assert.Contains(t, err.Error(), `expected Int8, got "128"`)
}

func TestClient_ContextDeadline(t *testing.T) {
	cconn, sconn := net.Pipe()
	defer func() { _ = sconn.Close() }()
	c := NewClient(cconn)
	defer func() { _ = c.Close() }()

	// nobody serves sconn, so the write blocks until the deadline
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.ExecSQLContext(ctx, "select * from t")
	require.Error(t, err)
	var ne net.Error
	require.True(t, errors.As(err, &ne))
	assert.True(t, ne.Timeout())
}

func TestClient_Nil(t *testing.T) {
	var c *Client
	_, err := c.ExecSQL("select * from t")
	require.Error(t, err)
	assert.NoError(t, c.Close())
}
