package blockio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/lcb/blocks"
	"github.com/grailbio/lcb/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoChromCoverageStorage(t *testing.T) *graph.Storage {
	t.Helper()
	s, err := graph.NewStorage(3, 150, []graph.Chromosome{
		{Description: "chr1", Sequence: make([]byte, 10)},
		{Description: "chr2", Sequence: make([]byte, 20)},
	}, []graph.JunctionRecord{
		{ChrID: 0, Position: 0, VertexID: 1},
		{ChrID: 1, Position: 0, VertexID: 2},
	})
	require.NoError(t, err)
	return s
}

func TestWriteCoverageReportFullAndZeroCoverage(t *testing.T) {
	s := twoChromCoverageStorage(t)
	instances := []blocks.Instance{
		{ChrID: 0, ChrDescription: "chr1", Start: 0, End: 10}, // covers all of chr1
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCoverageReport(&buf, s, instances, 5))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.True(t, len(lines) > 1)
	assert.Equal(t, "Threshold\tChromosome\tCoveredBases\tLength\tFraction", lines[0])

	var sawChr1Full, sawChr2Empty bool
	for _, line := range lines[1:] {
		fields := strings.Split(line, "\t")
		require.Len(t, fields, 5)
		if fields[0] == "5" && fields[1] == "chr1" {
			assert.Equal(t, "10", fields[2])
			assert.Equal(t, "1.0000", fields[4])
			sawChr1Full = true
		}
		if fields[0] == "5" && fields[1] == "chr2" {
			assert.Equal(t, "0", fields[2])
			assert.Equal(t, "0.0000", fields[4])
			sawChr2Empty = true
		}
	}
	assert.True(t, sawChr1Full)
	assert.True(t, sawChr2Empty)
}

func TestWriteCoverageReportExcludesBelowThreshold(t *testing.T) {
	s := twoChromCoverageStorage(t)
	instances := []blocks.Instance{
		{ChrID: 0, ChrDescription: "chr1", Start: 0, End: 3}, // length 3
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCoverageReport(&buf, s, instances, 5))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for _, line := range lines[1:] {
		fields := strings.Split(line, "\t")
		if fields[0] == "500" && fields[1] == "chr1" {
			assert.Equal(t, "0", fields[2])
		}
	}
}
