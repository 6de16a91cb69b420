package blockio

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/grailbio/lcb/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeRecords(t *testing.T, records []graph.JunctionRecord) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, r := range records {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, rawRecord{
			ChrID: r.ChrID, Position: r.Position, VertexID: r.VertexID,
		}))
	}
	return buf.Bytes()
}

func TestReadJunctionsRoundTrip(t *testing.T) {
	want := []graph.JunctionRecord{
		{ChrID: 0, Position: 0, VertexID: 1},
		{ChrID: 0, Position: 3, VertexID: 100},
		{ChrID: 1, Position: 0, VertexID: -5},
	}
	got, err := ReadJunctions(bytes.NewReader(encodeRecords(t, want)))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadJunctionsEmpty(t *testing.T) {
	got, err := ReadJunctions(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadJunctionsRejectsOutOfOrder(t *testing.T) {
	bad := []graph.JunctionRecord{
		{ChrID: 0, Position: 5, VertexID: 1},
		{ChrID: 0, Position: 3, VertexID: 2},
	}
	_, err := ReadJunctions(bytes.NewReader(encodeRecords(t, bad)))
	assert.Error(t, err)
}

func TestReadJunctionsRejectsTruncatedRecord(t *testing.T) {
	data := encodeRecords(t, []graph.JunctionRecord{{ChrID: 0, Position: 0, VertexID: 1}})
	_, err := ReadJunctions(bytes.NewReader(data[:10]))
	assert.Error(t, err)
}
