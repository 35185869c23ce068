package shell

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/tinysql/internal/engine"
	"github.com/tuannm99/tinysql/internal/sql/executor"
)

func newLocalSession(t *testing.T, multiline bool) (*Session, *engine.Database) {
	t.Helper()
	db := engine.NewDatabase()
	s := NewSession(executor.NewExecutor(db), Options{
		Catalog:   db,
		History:   NewHistory(""),
		Multiline: multiline,
	})
	return s, db
}

type panicRunner struct{}

func (panicRunner) ExecSQL(string) ([]*executor.Result, error) {
	panic("runner must not be called")
}

func TestSession_Exit(t *testing.T) {
	s := NewSession(panicRunner{}, Options{Multiline: true})

	out, ctl := s.Handle(".exit")
	assert.Equal(t, Exit, ctl)
	assert.Equal(t, "Bye bye", out)
}

func TestSession_ExitDiscardsPendingStatement(t *testing.T) {
	s := NewSession(panicRunner{}, Options{Multiline: true})

	out, ctl := s.Handle("insert into users")
	assert.Equal(t, Continue, ctl)
	assert.Empty(t, out)
	require.True(t, s.Pending())

	_, ctl = s.Handle("  .exit  ")
	assert.Equal(t, Exit, ctl)
	assert.False(t, s.Pending())
}

func TestSession_ResetDropsPending(t *testing.T) {
	s := NewSession(panicRunner{}, Options{Multiline: true})

	s.Handle("select *")
	require.True(t, s.Pending())

	s.Reset()
	assert.False(t, s.Pending())
	out, ctl := s.Handle("")
	assert.Equal(t, Continue, ctl)
	assert.Empty(t, out)
}

func TestSession_UnknownDirective(t *testing.T) {
	s := NewSession(panicRunner{}, Options{})

	out, ctl := s.Handle(".something")
	assert.Equal(t, Continue, ctl)
	assert.Equal(t, "unknown command .something", out)
}

func TestSession_EmptyLine(t *testing.T) {
	s := NewSession(panicRunner{}, Options{})
	out, ctl := s.Handle("   ")
	assert.Equal(t, Continue, ctl)
	assert.Empty(t, out)
}

func TestSession_UsersExample(t *testing.T) {
	s, _ := newLocalSession(t, false)

	out, _ := s.Handle("create table users (id id, age uint8);")
	assert.Equal(t, "table users created", out)

	out, _ = s.Handle("insert into users values (200);")
	assert.Equal(t, "1 row inserted into users (id=1)", out)

	out, _ = s.Handle("insert into users values (300);")
	assert.Equal(t, `error: insert users: type mismatch for column "age": expected Uint8, got "300"`, out)

	out, _ = s.Handle("select * from users;")
	assert.Equal(t, "id | age\n---+----\n1  | 200\n(1 rows)", out)

	out, _ = s.Handle("drop table users;")
	assert.Equal(t, "table users dropped", out)
}

func TestSession_ParseErrorIsOneLine(t *testing.T) {
	s, _ := newLocalSession(t, false)

	out, ctl := s.Handle("something")
	assert.Equal(t, Continue, ctl)
	assert.Equal(t, "error: unknown SQL statement: something", out)
}

func TestSession_BatchPartialCommitRendering(t *testing.T) {
	s, db := newLocalSession(t, false)

	out, _ := s.Handle("create table a (x int8); insert into a values (1); drop table nope; insert into a values (2);")
	assert.Equal(t, "table a created\n1 row inserted into a\nerror: drop table nope: unknown table \"nope\"", out)

	sel, err := db.Select("a", nil)
	require.NoError(t, err)
	assert.Len(t, sel.Rows, 1)
}

func TestSession_Multiline(t *testing.T) {
	s, _ := newLocalSession(t, true)

	out, _ := s.Handle("create table notes (")
	assert.Empty(t, out)
	assert.True(t, s.Pending())

	out, _ = s.Handle("  body char255")
	assert.Empty(t, out)

	out, _ = s.Handle(");")
	assert.Equal(t, "table notes created", out)
	assert.False(t, s.Pending())

	// ';' inside a literal does not end the statement
	out, _ = s.Handle("insert into notes values ('a;")
	assert.Empty(t, out)
	out, _ = s.Handle("b');")
	assert.Equal(t, "1 row inserted into notes", out)

	out, _ = s.Handle("select body from notes;")
	assert.Equal(t, "body\n----\na;\nb\n(1 rows)", out)
}

func TestSession_TablesAndSchema(t *testing.T) {
	s, _ := newLocalSession(t, false)

	out, _ := s.Handle(".tables")
	assert.Equal(t, "(no tables)", out)

	s.Handle("create table Users (id id, name char255, age uint8)")
	s.Handle("create table accounts (n int64)")

	out, _ = s.Handle(".tables")
	assert.Equal(t, "accounts\nusers", out)

	out, _ = s.Handle(".schema USERS")
	assert.Equal(t, "create table users (id id, name char255, age uint8);", out)

	out, _ = s.Handle(".schema ghosts")
	assert.Equal(t, `error: unknown table "ghosts"`, out)

	out, _ = s.Handle(".schema")
	assert.Equal(t, "usage: .schema <table>", out)
}

func TestSession_DirectivesWithoutCatalog(t *testing.T) {
	s := NewSession(panicRunner{}, Options{})

	out, _ := s.Handle(".tables")
	assert.Contains(t, out, "not available")

	out, _ = s.Handle(".history")
	assert.Equal(t, "history is disabled", out)

	out, _ = s.Handle(".help")
	assert.Contains(t, out, ".exit")
}

func TestSession_HistoryRecordsBatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist")
	h := NewHistory(path)
	db := engine.NewDatabase()
	s := NewSession(executor.NewExecutor(db), Options{History: h, Multiline: true})

	s.Handle("create table t")
	s.Handle("(a int8);")
	s.Handle("select * from t;")

	out, _ := s.Handle(".history")
	assert.Equal(t, "    1  create table t (a int8);\n    2  select * from t;", out)

	reloaded := NewHistory(path)
	require.NoError(t, reloaded.Load(0))
	assert.Equal(t, h.Lines(), reloaded.Lines())
}

type errRunner struct{ err error }

func (r errRunner) ExecSQL(string) ([]*executor.Result, error) { return nil, r.err }

func TestSession_RemoteErrorRendering(t *testing.T) {
	s := NewSession(errRunner{err: errors.New("connection\nreset")}, Options{})
	out, _ := s.Handle("select * from t;")
	assert.Equal(t, "error: connection reset", out)
}

func TestStatementComplete(t *testing.T) {
	assert.True(t, statementComplete("select * from t;"))
	assert.True(t, statementComplete("select * from t;  \n"))
	assert.True(t, statementComplete("a; b;"))
	assert.False(t, statementComplete("a; b"))
	assert.False(t, statementComplete("insert into t values ('x;"))
	assert.True(t, statementComplete("insert into t values ('x;');"))
	assert.False(t, statementComplete(""))
}
