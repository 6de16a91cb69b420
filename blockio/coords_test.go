package blockio

import (
	"bytes"
	"testing"

	"github.com/grailbio/lcb/blocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCoordsHeaderOnlyWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCoords(&buf, nil))
	assert.Equal(t, "Seq_id\tStrand\tStart\tEnd\tLength\n", buf.String())
}

func TestWriteCoordsFormatsInstances(t *testing.T) {
	instances := []blocks.Instance{
		{Block: 1, ChrDescription: "chr1", Strand: 1, Start: 0, End: 9},
		{Block: 1, ChrDescription: "chr2", Strand: -1, Start: 0, End: 9},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCoords(&buf, instances))
	want := "Seq_id\tStrand\tStart\tEnd\tLength\n" +
		"Block #1\n" +
		"chr1\t+\t1\t9\t9\n" +
		"chr2\t-\t1\t9\t9\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}
