package sqlwire

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, ExecuteRequest{ID: 7, SQL: "select * from t;"}))

	var got ExecuteRequest
	require.NoError(t, ReadFrame(&buf, &got))
	assert.Equal(t, ExecuteRequest{ID: 7, SQL: "select * from t;"}, got)
	assert.Zero(t, buf.Len())
}

func TestFrame_NumbersStayExact(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, map[string]any{"v": uint64(18446744073709551615)}))

	var got map[string]any
	require.NoError(t, ReadFrame(&buf, &got))
	assert.Equal(t, json.Number("18446744073709551615"), got["v"])
}

func TestFrame_RejectsBadHeaders(t *testing.T) {
	var hdr [4]byte

	binary.BigEndian.PutUint32(hdr[:], 0)
	err := ReadFrame(bytes.NewReader(hdr[:]), &struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty frame")

	binary.BigEndian.PutUint32(hdr[:], MaxFrameSize+1)
	err = ReadFrame(bytes.NewReader(hdr[:]), &struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame too large")
}

func TestFrame_BadJSON(t *testing.T) {
	body := []byte("{nope")
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(body)))

	err := ReadFrame(bytes.NewReader(append(hdr[:], body...)), &ExecuteRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad json")
}

func TestFrame_Truncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, ExecuteRequest{ID: 1, SQL: "x"}))
	truncated := buf.Bytes()[:buf.Len()-2]

	err := ReadFrame(bytes.NewReader(truncated), &ExecuteRequest{})
	require.Error(t, err)
}
