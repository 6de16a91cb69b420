package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKeeperSetGetUnset(t *testing.T) {
	dk := NewDistanceKeeper()
	assert.False(t, dk.IsSet(5))
	dk.Set(5, 42)
	assert.True(t, dk.IsSet(5))
	dist, ok := dk.Get(5)
	assert.True(t, ok)
	assert.EqualValues(t, 42, dist)

	dk.Set(5, -7)
	dist, _ = dk.Get(5)
	assert.EqualValues(t, -7, dist)

	dk.Unset(5)
	assert.False(t, dk.IsSet(5))
	dk.Unset(5) // no-op, must not panic
}

func TestDistanceKeeperClear(t *testing.T) {
	dk := NewDistanceKeeper()
	dk.Set(1, 1)
	dk.Set(2, 2)
	dk.Set(3, 3)
	assert.Equal(t, 3, dk.Len())
	dk.Clear()
	assert.Equal(t, 0, dk.Len())
	assert.False(t, dk.IsSet(1))
}
