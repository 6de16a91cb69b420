package graph

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForbiddenAddIsSymmetric(t *testing.T) {
	f := NewForbidden()
	e := Edge{Start: 1, End: 2, Letter: 'A', Length: 5}
	assert.False(t, f.IsForbidden(e))
	f.Add(e)
	assert.True(t, f.IsForbidden(e))
	assert.True(t, f.IsForbidden(e.Reverse()))
}

func TestForbiddenConcurrentAccess(t *testing.T) {
	f := NewForbidden()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int64) {
			defer wg.Done()
			e := Edge{Start: i, End: i + 1, Letter: 'A', Length: 1}
			f.Add(e)
			_ = f.IsForbidden(e)
		}(int64(i))
	}
	wg.Wait()
	for i := int64(0); i < 50; i++ {
		assert.True(t, f.IsForbidden(Edge{Start: i, End: i + 1, Letter: 'A', Length: 1}))
	}
}
