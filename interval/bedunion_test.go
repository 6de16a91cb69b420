package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBEDUnionFromEntries(t *testing.T) {
	entries := []Entry{
		{"chr1", 100, 200},
		{"chr1", 150, 250},
		{"chr1", 300, 310},
		{"chr2", 5, 5},
		{"chr2", 10, 20},
	}
	u, err := NewBEDUnionFromEntries(entries)
	require.NoError(t, err)

	assert.True(t, u.ContainsByName("chr1", 100))
	assert.True(t, u.ContainsByName("chr1", 249))
	assert.False(t, u.ContainsByName("chr1", 250))
	assert.True(t, u.ContainsByName("chr1", 300))
	assert.False(t, u.ContainsByName("chr1", 310))

	assert.False(t, u.ContainsByName("chr2", 5))
	assert.True(t, u.ContainsByName("chr2", 10))
	assert.False(t, u.ContainsByName("chr3", 0))

	assert.EqualValues(t, 160, u.CoveredBases("chr1"))
	assert.EqualValues(t, 10, u.CoveredBases("chr2"))
	assert.EqualValues(t, 0, u.CoveredBases("chr3"))
}

func TestNewBEDUnionFromEntriesUnsorted(t *testing.T) {
	entries := []Entry{
		{"chr1", 100, 200},
		{"chr1", 50, 60},
	}
	_, err := NewBEDUnionFromEntries(entries)
	assert.Error(t, err)
}

func TestNewBEDUnionFromEntriesInvalidRange(t *testing.T) {
	_, err := NewBEDUnionFromEntries([]Entry{{"chr1", 200, 100}})
	assert.Error(t, err)
}

func TestBEDUnionClone(t *testing.T) {
	u, err := NewBEDUnionFromEntries([]Entry{{"chr1", 0, 10}})
	require.NoError(t, err)
	clone := u.Clone()
	assert.True(t, clone.ContainsByName("chr1", 5))
}

func TestSequentialQueries(t *testing.T) {
	u, err := NewBEDUnionFromEntries([]Entry{
		{"chr1", 10, 20},
		{"chr1", 30, 40},
	})
	require.NoError(t, err)
	// Query in increasing order to exercise the sequential fast path.
	assert.False(t, u.ContainsByName("chr1", 5))
	assert.True(t, u.ContainsByName("chr1", 15))
	assert.False(t, u.ContainsByName("chr1", 25))
	assert.True(t, u.ContainsByName("chr1", 35))
	// Now go backwards, which falls off the sequential path.
	assert.True(t, u.ContainsByName("chr1", 15))
}
