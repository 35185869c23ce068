package tinysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	db, ex := Open()

	res, err := ex.ExecSQL("create table kv (id id, v char255); insert into kv values ('x'); select v from kv;")
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, [][]any{{"x"}}, res[2].Rows)
	assert.Equal(t, []string{"kv"}, db.ListTables())
}
