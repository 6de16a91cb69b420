package path

import "github.com/grailbio/lcb/graph"

// BestPath snapshots the best-scoring extension seen so far in one
// direction, as a score plus the sequence of edges that produced it. Because
// the bounded DFS backtracks out of every branch it explores (successful or
// not), the path is back at its pre-round state by the time a round
// finishes; Fix{Forward,Backward} restore the best branch by popping down to
// empty and replaying the recorded edges, rather than assuming anything is
// still pushed.
type BestPath struct {
	score      int64
	rightEdges []graph.Edge
	leftEdges  []graph.Edge
}

// NewBestPath returns a BestPath with no snapshot and a score of zero.
func NewBestPath() *BestPath { return &BestPath{} }

// Score returns the best score recorded so far.
func (bp *BestPath) Score() int64 { return bp.score }

// SeedForward anchors the snapshot to p's current state and score, so that a
// round which finds nothing better than the starting point restores exactly
// that starting point instead of losing it.
func (bp *BestPath) SeedForward(p *Path) {
	bp.score = p.Score(false)
	bp.rightEdges = snapshotEdges(p.rightBody)
}

// SeedBackward is SeedForward's backward-direction counterpart.
func (bp *BestPath) SeedBackward(p *Path) {
	bp.score = p.Score(false)
	bp.leftEdges = snapshotEdges(p.leftBody)
}

// UpdateForward records p's current rightBody and score as the new best
// forward extension.
func (bp *BestPath) UpdateForward(p *Path, score int64) {
	bp.score = score
	bp.rightEdges = snapshotEdges(p.rightBody)
}

// UpdateBackward records p's current leftBody and score as the new best
// backward extension.
func (bp *BestPath) UpdateBackward(p *Path, score int64) {
	bp.score = score
	bp.leftEdges = snapshotEdges(p.leftBody)
}

func snapshotEdges(body []bodyEdge) []graph.Edge {
	out := make([]graph.Edge, len(body))
	for i, be := range body {
		out[i] = be.Edge
	}
	return out
}

// FixForward pops p's rightBody down to empty and replays the recorded best
// forward edge sequence, left to right.
func (bp *BestPath) FixForward(p *Path) {
	for len(p.rightBody) > 0 {
		p.PointPopBack()
	}
	for _, e := range bp.rightEdges {
		if !p.PointPushBack(e) {
			break
		}
	}
}

// FixBackward pops p's leftBody down to empty and replays the recorded best
// backward edge sequence. leftEdges is stored outermost-first (as leftBody
// itself is), so replaying via PointPushFront -- which always prepends --
// must proceed from the innermost (origin-closest) edge outward.
func (bp *BestPath) FixBackward(p *Path) {
	for len(p.leftBody) > 0 {
		p.PointPopFront()
	}
	for i := len(bp.leftEdges) - 1; i >= 0; i-- {
		if !p.PointPushFront(bp.leftEdges[i]) {
			break
		}
	}
}
