package path

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/lcb/graph"
)

type bodyEdge struct {
	Edge      graph.Edge
	StartDist int64
}

// Path is the central mutable state machine: an origin vertex, a left body
// and a right body of edges extending from it, and the set of instances
// riding along. maxBranchSize doubles as the flank-budget tolerance
// (maxFlankingSize) per DESIGN.md, since the original engine and spec.md's
// own Path invariant both fold the two into a single constant.
type Path struct {
	storage   *graph.Storage
	forbidden *graph.Forbidden
	dk        *graph.DistanceKeeper

	origin     int64
	leftBody   []bodyEdge
	rightBody  []bodyEdge
	leftFlank  int64
	rightFlank int64
	instances  []Instance

	maxBranchSize   int64
	minBlockSize    int64
	maxFlankingSize int64
}

// NewPath returns an uninitialized Path bound to storage and the shared
// Forbidden set. Call Init before use.
func NewPath(storage *graph.Storage, forbidden *graph.Forbidden, maxBranchSize, minBlockSize int64) *Path {
	return &Path{
		storage:         storage,
		forbidden:       forbidden,
		dk:              graph.NewDistanceKeeper(),
		maxBranchSize:   maxBranchSize,
		minBlockSize:    minBlockSize,
		maxFlankingSize: maxBranchSize,
	}
}

// Init resets the path and roots it at v, seeding one instance per un-used
// occurrence of v.
func (p *Path) Init(v int64) {
	p.Clear()
	p.origin = v
	p.dk.Set(v, 0)
	for _, h := range p.storage.Occurrences(v) {
		it := p.storage.IteratorAt(h)
		if it.Used() {
			continue
		}
		p.instances = append(p.instances, Instance{Front: it, Back: it})
	}
}

// Clear empties the path: zero flanks, no body edges, no instances, and an
// empty DistanceKeeper.
func (p *Path) Clear() {
	p.dk.Clear()
	p.leftBody = nil
	p.rightBody = nil
	p.leftFlank = 0
	p.rightFlank = 0
	p.instances = nil
}

// Origin returns the vertex the path was rooted at.
func (p *Path) Origin() int64 { return p.origin }

// EndVertex returns the path's current rightmost vertex.
func (p *Path) EndVertex() int64 {
	if len(p.rightBody) == 0 {
		return p.origin
	}
	return p.rightBody[len(p.rightBody)-1].Edge.End
}

// StartVertex returns the path's current leftmost vertex.
func (p *Path) StartVertex() int64 {
	if len(p.leftBody) == 0 {
		return p.origin
	}
	return p.leftBody[0].Edge.Start
}

// IsOnPath reports whether v currently has a vertex on the path.
func (p *Path) IsOnPath(v int64) bool { return p.dk.IsSet(v) }

// LeftFlank returns the (non-positive) distance from origin to the leftmost
// vertex.
func (p *Path) LeftFlank() int64 { return p.leftFlank }

// RightFlank returns the (non-negative) distance from origin to the
// rightmost vertex.
func (p *Path) RightFlank() int64 { return p.rightFlank }

// MiddlePathLength returns the path's total span, rightFlank - leftFlank.
func (p *Path) MiddlePathLength() int64 { return p.rightFlank - p.leftFlank }

// NumInstances returns the number of instances currently riding the path.
func (p *Path) NumInstances() int { return len(p.instances) }

// Instances returns a copy of the current instance list.
func (p *Path) Instances() []Instance {
	out := make([]Instance, len(p.instances))
	copy(out, p.instances)
	return out
}

// GoodInstances returns the number of instances whose length is at least
// minBlockSize.
func (p *Path) GoodInstances() int {
	n := 0
	for _, inst := range p.instances {
		if inst.Length() >= p.minBlockSize {
			n++
		}
	}
	return n
}

// GoodInstanceList returns every instance whose length is at least
// minBlockSize.
func (p *Path) GoodInstanceList() []Instance {
	var out []Instance
	for _, inst := range p.instances {
		if inst.Length() >= p.minBlockSize {
			out = append(out, inst)
		}
	}
	return out
}

// Score sums per-instance scores: 2*length - middle, where middle is the
// path's total span. When final is true, only instances meeting minBlockSize
// contribute.
func (p *Path) Score(final bool) int64 {
	middle := p.MiddlePathLength()
	var total int64
	for _, inst := range p.instances {
		length := inst.Length()
		if final && length < p.minBlockSize {
			continue
		}
		total += 2*length - middle
	}
	return total
}

// Edges returns every body edge of the path, left to right.
func (p *Path) Edges() []graph.Edge {
	out := make([]graph.Edge, 0, len(p.leftBody)+len(p.rightBody))
	for _, be := range p.leftBody {
		out = append(out, be.Edge)
	}
	for _, be := range p.rightBody {
		out = append(out, be.Edge)
	}
	return out
}

// advanceToVertex walks forward from it, along its chromosome and strand,
// looking for a junction with vertex-id target. The immediate successor is
// accepted unconditionally on a match, exactly like an ordinary de Bruijn
// edge whose length is unrelated to maxGap; only a match further out (a
// bubble) is gated by maxGap base pairs. Returns the matching iterator, or
// false if none was found within budget.
func advanceToVertex(it graph.JunctionIterator, target int64, maxGap int64) (graph.JunctionIterator, bool) {
	cur := it
	startPos := int64(it.Position())
	immediate := true
	for {
		next, ok := cur.Advance()
		if !ok {
			return graph.JunctionIterator{}, false
		}
		if next.VertexID() == target {
			if immediate {
				return next, true
			}
			if int64(next.Position())-startPos > maxGap {
				return graph.JunctionIterator{}, false
			}
			return next, true
		}
		if int64(next.Position())-startPos > maxGap {
			return graph.JunctionIterator{}, false
		}
		cur = next
		immediate = false
	}
}

// retreatToVertex is the backward mirror of advanceToVertex.
func retreatToVertex(it graph.JunctionIterator, target int64, maxGap int64) (graph.JunctionIterator, bool) {
	cur := it
	startPos := int64(it.Position())
	immediate := true
	for {
		prev, ok := cur.Retreat()
		if !ok {
			return graph.JunctionIterator{}, false
		}
		if prev.VertexID() == target {
			if immediate {
				return prev, true
			}
			if startPos-int64(prev.Position()) > maxGap {
				return graph.JunctionIterator{}, false
			}
			return prev, true
		}
		if startPos-int64(prev.Position()) > maxGap {
			return graph.JunctionIterator{}, false
		}
		cur = prev
		immediate = false
	}
}

type backMutation struct {
	idx      int
	oldBack  graph.JunctionIterator
	oldDist  int64
}

// PointPushBack extends the path rightward along e, which must start at
// EndVertex(). Returns false (rolling back all mutations) if extending would
// push any sufficiently-long instance's flank past maxFlankingSize.
func (p *Path) PointPushBack(e graph.Edge) bool {
	if e.Start != p.EndVertex() {
		log.Panicf("path: PointPushBack edge %+v does not start at path end %d", e, p.EndVertex())
	}
	if p.dk.IsSet(e.End) {
		return false
	}

	startDist := p.rightFlank
	endDist := startDist + e.Length

	var mutations []backMutation
	taken := make(map[graph.Handle]bool)
	for i := range p.instances {
		inst := &p.instances[i]
		next, ok := advanceToVertex(inst.Back, e.End, p.maxBranchSize)
		if !ok || next.Used() {
			continue
		}
		mutations = append(mutations, backMutation{idx: i, oldBack: inst.Back, oldDist: inst.BackDistance})
		inst.Back = next
		inst.BackDistance = endDist
		taken[next.Handle()] = true
	}

	for _, inst := range p.instances {
		if inst.Length() < p.minBlockSize {
			continue
		}
		leftFlankI := p.leftFlank - inst.FrontDistance
		rightFlankI := endDist - inst.BackDistance
		if absInt64(leftFlankI) > p.maxFlankingSize || absInt64(rightFlankI) > p.maxFlankingSize {
			for _, m := range mutations {
				p.instances[m.idx].Back = m.oldBack
				p.instances[m.idx].BackDistance = m.oldDist
			}
			return false
		}
	}

	var fresh []Instance
	for _, h := range p.storage.Occurrences(e.End) {
		if taken[h] {
			continue
		}
		it := p.storage.IteratorAt(h)
		if it.Used() {
			continue
		}
		fresh = append(fresh, Instance{Front: it, Back: it, FrontDistance: endDist, BackDistance: endDist})
	}
	p.instances = append(p.instances, fresh...)
	p.rightBody = append(p.rightBody, bodyEdge{Edge: e, StartDist: startDist})
	p.dk.Set(e.End, endDist)
	p.rightFlank = endDist
	return true
}

// PointPopBack undoes the most recent PointPushBack.
func (p *Path) PointPopBack() {
	if len(p.rightBody) == 0 {
		log.Panicf("path: PointPopBack on empty right body")
	}
	last := p.rightBody[len(p.rightBody)-1]
	p.rightBody = p.rightBody[:len(p.rightBody)-1]
	removed := last.Edge.End
	p.dk.Unset(removed)
	p.rightFlank = last.StartDist

	kept := p.instances[:0]
	for _, inst := range p.instances {
		if inst.Back.VertexID() == removed {
			cur := inst.Back
			dist := inst.BackDistance
			dropped := false
			for {
				if cur.Handle() == inst.Front.Handle() {
					dropped = true
					break
				}
				prev, ok := cur.Retreat()
				if !ok {
					dropped = true
					break
				}
				cur = prev
				if d, ok := p.dk.Get(cur.VertexID()); ok {
					dist = d
					break
				}
			}
			if dropped {
				continue
			}
			inst.Back = cur
			inst.BackDistance = dist
		}
		kept = append(kept, inst)
	}
	p.instances = kept
}

type frontMutation struct {
	idx     int
	oldFront graph.JunctionIterator
	oldDist  int64
}

// PointPushFront extends the path leftward along e, which must end at
// StartVertex(). Symmetric to PointPushBack.
func (p *Path) PointPushFront(e graph.Edge) bool {
	if e.End != p.StartVertex() {
		log.Panicf("path: PointPushFront edge %+v does not end at path start %d", e, p.StartVertex())
	}
	if p.dk.IsSet(e.Start) {
		return false
	}

	endDist := p.leftFlank
	startDist := endDist - e.Length

	var mutations []frontMutation
	taken := make(map[graph.Handle]bool)
	for i := range p.instances {
		inst := &p.instances[i]
		prev, ok := retreatToVertex(inst.Front, e.Start, p.maxBranchSize)
		if !ok || prev.Used() {
			continue
		}
		mutations = append(mutations, frontMutation{idx: i, oldFront: inst.Front, oldDist: inst.FrontDistance})
		inst.Front = prev
		inst.FrontDistance = startDist
		taken[prev.Handle()] = true
	}

	for _, inst := range p.instances {
		if inst.Length() < p.minBlockSize {
			continue
		}
		leftFlankI := startDist - inst.FrontDistance
		rightFlankI := p.rightFlank - inst.BackDistance
		if absInt64(leftFlankI) > p.maxFlankingSize || absInt64(rightFlankI) > p.maxFlankingSize {
			for _, m := range mutations {
				p.instances[m.idx].Front = m.oldFront
				p.instances[m.idx].FrontDistance = m.oldDist
			}
			return false
		}
	}

	var fresh []Instance
	for _, h := range p.storage.Occurrences(e.Start) {
		if taken[h] {
			continue
		}
		it := p.storage.IteratorAt(h)
		if it.Used() {
			continue
		}
		fresh = append(fresh, Instance{Front: it, Back: it, FrontDistance: startDist, BackDistance: startDist})
	}
	p.instances = append(p.instances, fresh...)
	p.leftBody = append([]bodyEdge{{Edge: e, StartDist: startDist}}, p.leftBody...)
	p.dk.Set(e.Start, startDist)
	p.leftFlank = startDist
	return true
}

// PointPopFront undoes the most recent PointPushFront.
func (p *Path) PointPopFront() {
	if len(p.leftBody) == 0 {
		log.Panicf("path: PointPopFront on empty left body")
	}
	first := p.leftBody[0]
	p.leftBody = p.leftBody[1:]
	removed := first.Edge.Start
	p.dk.Unset(removed)
	if len(p.leftBody) == 0 {
		p.leftFlank = 0
	} else {
		p.leftFlank = p.leftBody[0].StartDist
	}

	kept := p.instances[:0]
	for _, inst := range p.instances {
		if inst.Front.VertexID() == removed {
			cur := inst.Front
			dist := inst.FrontDistance
			dropped := false
			for {
				if cur.Handle() == inst.Back.Handle() {
					dropped = true
					break
				}
				next, ok := cur.Advance()
				if !ok {
					dropped = true
					break
				}
				cur = next
				if d, ok := p.dk.Get(cur.VertexID()); ok {
					dist = d
					break
				}
			}
			if dropped {
				continue
			}
			inst.Front = cur
			inst.FrontDistance = dist
		}
		kept = append(kept, inst)
	}
	p.instances = kept
}
