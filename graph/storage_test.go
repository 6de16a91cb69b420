package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTestStorage lays out a single chromosome "AAACCCTTTCCCAAA" (k=3) with
// one junction per letter transition, giving vertex 100 two occurrences (the
// two CCC runs) and every other vertex one occurrence.
func buildTestStorage(t *testing.T) *Storage {
	t.Helper()
	seq := []byte("AAACCCTTTCCCAAA")
	records := []JunctionRecord{
		{ChrID: 0, Position: 0, VertexID: 1},
		{ChrID: 0, Position: 3, VertexID: 100},
		{ChrID: 0, Position: 6, VertexID: 2},
		{ChrID: 0, Position: 9, VertexID: 100},
		{ChrID: 0, Position: 12, VertexID: 3},
	}
	s, err := NewStorage(3, 150, []Chromosome{{Description: "chr1", Sequence: seq}}, records)
	require.NoError(t, err)
	return s
}

func TestNewStorageRejectsUnsortedInput(t *testing.T) {
	records := []JunctionRecord{
		{ChrID: 0, Position: 5, VertexID: 1},
		{ChrID: 0, Position: 3, VertexID: 2},
	}
	_, err := NewStorage(3, 150, []Chromosome{{Sequence: []byte("AAAAAAAAAA")}}, records)
	assert.Error(t, err)
}

func TestNewStorageRejectsUnknownChromosome(t *testing.T) {
	records := []JunctionRecord{{ChrID: 1, Position: 0, VertexID: 1}}
	_, err := NewStorage(3, 150, []Chromosome{{Sequence: []byte("AAAAAAAAAA")}}, records)
	assert.Error(t, err)
}

func TestNewStorageRejectsNonPositiveEdgeLength(t *testing.T) {
	records := []JunctionRecord{
		{ChrID: 0, Position: 3, VertexID: 1},
		{ChrID: 0, Position: 3, VertexID: 2},
	}
	_, err := NewStorage(3, 150, []Chromosome{{Sequence: []byte("AAAAAAAAAA")}}, records)
	assert.Error(t, err)
}

func TestOccurrencesMirrorsReverseStrand(t *testing.T) {
	s := buildTestStorage(t)
	occ := s.Occurrences(100)
	require.Len(t, occ, 2)
	occNeg := s.Occurrences(-100)
	require.Len(t, occNeg, 2)
	for _, h := range occNeg {
		assert.Equal(t, int8(-1), h.Strand)
	}
}

func TestJunctionIteratorAdvanceRetreat(t *testing.T) {
	s := buildTestStorage(t)
	it := s.Begin(0)
	assert.EqualValues(t, 1, it.VertexID())
	next, ok := it.Advance()
	require.True(t, ok)
	assert.EqualValues(t, 100, next.VertexID())

	prev, ok := next.Retreat()
	require.True(t, ok)
	assert.Equal(t, it.Handle(), prev.Handle())

	_, ok = s.End(0).Advance()
	assert.False(t, ok)
}

func TestOutgoingLetterForwardAndReverse(t *testing.T) {
	s := buildTestStorage(t)
	fwd := s.Begin(0) // vertex 1 at pos 0, k=3: letter at pos 3 == 'C'
	assert.Equal(t, byte('C'), fwd.OutgoingLetter())

	rev := JunctionIterator{s: s, h: Handle{Chr: 0, Idx: 1, Strand: -1}} // vertex -100 at pos 3
	assert.Equal(t, byte('T'), rev.OutgoingLetter())                    // complement('A') at pos 2
}

func TestOutgoingEdges(t *testing.T) {
	s := buildTestStorage(t)
	edges := s.OutgoingEdges(1)
	require.Len(t, edges, 1)
	assert.EqualValues(t, 100, edges[0].End)
	assert.EqualValues(t, 3, edges[0].Length)
	assert.Equal(t, byte('C'), edges[0].Letter)
	assert.Equal(t, 1, edges[0].Multiplicity)
}

func TestAbundanceFilter(t *testing.T) {
	seq := []byte("AAACCCTTTCCCAAA")
	records := []JunctionRecord{
		{ChrID: 0, Position: 0, VertexID: 1},
		{ChrID: 0, Position: 3, VertexID: 100},
		{ChrID: 0, Position: 6, VertexID: 2},
		{ChrID: 0, Position: 9, VertexID: 100},
		{ChrID: 0, Position: 12, VertexID: 3},
	}
	s, err := NewStorage(3, 3, []Chromosome{{Sequence: seq}}, records)
	require.NoError(t, err)
	// vertex 100 has 2 forward + 2 mirrored-reverse occurrences == 4 > abundance 3.
	assert.True(t, s.IsFiltered(100))
	assert.Nil(t, s.Occurrences(100))
}

func TestEdgeReverse(t *testing.T) {
	e := Edge{Start: 5, End: -3, Letter: 'A', Length: 10, Multiplicity: 2}
	r := e.Reverse()
	assert.EqualValues(t, 3, r.Start)
	assert.EqualValues(t, -5, r.End)
	assert.Equal(t, byte('T'), r.Letter)
	assert.EqualValues(t, 10, r.Length)
}
