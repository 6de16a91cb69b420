package graph

// DistanceKeeper is a sparse map from vertex-id to its signed distance along
// the current path. It is scratch state: reset between origins via Clear,
// which is proportional to the number of set entries rather than the size of
// the vertex universe.
type DistanceKeeper struct {
	values map[int64]int64
}

// NewDistanceKeeper returns an empty DistanceKeeper.
func NewDistanceKeeper() *DistanceKeeper {
	return &DistanceKeeper{values: make(map[int64]int64)}
}

// Set records v's distance, overwriting any previous value.
func (d *DistanceKeeper) Set(v, dist int64) { d.values[v] = dist }

// Unset removes v. A no-op if v was not set.
func (d *DistanceKeeper) Unset(v int64) { delete(d.values, v) }

// Get returns v's distance and whether it is set.
func (d *DistanceKeeper) Get(v int64) (int64, bool) {
	dist, ok := d.values[v]
	return dist, ok
}

// IsSet reports whether v currently has a recorded distance.
func (d *DistanceKeeper) IsSet(v int64) bool {
	_, ok := d.values[v]
	return ok
}

// Len returns the number of vertices currently set.
func (d *DistanceKeeper) Len() int { return len(d.values) }

// Clear unsets every vertex.
func (d *DistanceKeeper) Clear() {
	for v := range d.values {
		delete(d.values, v)
	}
}
