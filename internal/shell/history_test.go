package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_AppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history")

	h := NewHistory(path)
	require.NoError(t, h.Load(10)) // missing file is fine

	require.NoError(t, h.Append("select *\n\tfrom t;"))
	require.NoError(t, h.Append("   "))
	require.NoError(t, h.Append("drop table t;"))
	assert.Equal(t, []string{"select * from t;", "drop table t;"}, h.Lines())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "select * from t;\ndrop table t;\n", string(data))

	tail := NewHistory(path)
	require.NoError(t, tail.Load(1))
	assert.Equal(t, []string{"drop table t;"}, tail.Lines())
}

func TestHistory_Format(t *testing.T) {
	h := NewHistory("")
	for _, s := range []string{"a;", "b;", "c;"} {
		require.NoError(t, h.Append(s))
	}
	assert.Equal(t, "    2  b;\n    3  c;", h.Format(2))
	assert.Equal(t, "    1  a;\n    2  b;\n    3  c;", h.Format(0))
	assert.Empty(t, NewHistory("").Format(5))
}

func TestCompactOneLine(t *testing.T) {
	assert.Equal(t, "a b c", compactOneLine("  a\r\n b\t\tc  "))
}
