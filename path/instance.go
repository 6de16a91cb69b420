package path

import "github.com/grailbio/lcb/graph"

// Instance is a contiguous occurrence pinned to the current Path: a front and
// back junction cursor on the same chromosome and strand, plus their signed
// distances from the path's origin along the path's central axis.
type Instance struct {
	Front, Back                 graph.JunctionIterator
	FrontDistance, BackDistance int64
}

// Length returns the instance's span in bases.
func (inst Instance) Length() int64 {
	return absInt64(int64(inst.Back.Position()) - int64(inst.Front.Position()))
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
