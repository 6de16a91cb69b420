package graph

import "github.com/grailbio/lcb/biosimd"

// Edge is a directed labeled arc (Start -> End, Letter) between two signed
// vertex-ids, collapsing every occurrence pair with the same (End, Letter,
// Length) into one edge of multiplicity > 1. Length is the number of base
// pairs the edge consumes; Letter is the base extending beyond Start.
type Edge struct {
	Start, End   int64
	Letter       byte
	Length       int64
	Multiplicity int
}

// Reverse returns the edge seen walking the opposite strand: (-End -> -Start,
// complement(Letter)).
func (e Edge) Reverse() Edge {
	return Edge{
		Start:        -e.End,
		End:          -e.Start,
		Letter:       biosimd.Complement(e.Letter),
		Length:       e.Length,
		Multiplicity: e.Multiplicity,
	}
}

func edgeLength(from, to JunctionIterator) int64 {
	if from.Strand() > 0 {
		return int64(to.Position()) - int64(from.Position())
	}
	return int64(from.Position()) - int64(to.Position())
}

type outKey struct {
	next   int64
	letter byte
	length int64
}

// OutgoingEdges enumerates the distinct outgoing edges of vertex v, grouping
// v's occurrences by their successor junction's vertex, the occurrence's own
// outgoing letter, and the edge length.
// Order is deterministic: the order in which the (next, letter, length)
// triples are first seen while scanning v's occurrence list.
func (s *Storage) OutgoingEdges(v int64) []Edge {
	counts := make(map[outKey]int)
	var order []outKey
	for _, h := range s.occurrences[v] {
		it := JunctionIterator{s: s, h: h}
		next, ok := it.Advance()
		if !ok {
			continue
		}
		nextV := next.VertexID()
		if s.filtered[nextV] {
			continue
		}
		k := outKey{next: nextV, letter: it.OutgoingLetter(), length: edgeLength(it, next)}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	edges := make([]Edge, 0, len(order))
	for _, k := range order {
		edges = append(edges, Edge{Start: v, End: k.next, Letter: k.letter, Length: k.length, Multiplicity: counts[k]})
	}
	return edges
}

// OutgoingEdgesNumber returns len(OutgoingEdges(v)).
func (s *Storage) OutgoingEdgesNumber(v int64) int { return len(s.OutgoingEdges(v)) }

type inKey struct {
	prev   int64
	letter byte
	length int64
}

// IngoingEdges enumerates the distinct incoming edges of vertex v.
func (s *Storage) IngoingEdges(v int64) []Edge {
	counts := make(map[inKey]int)
	var order []inKey
	for _, h := range s.occurrences[v] {
		it := JunctionIterator{s: s, h: h}
		prev, ok := it.Retreat()
		if !ok {
			continue
		}
		prevV := prev.VertexID()
		if s.filtered[prevV] {
			continue
		}
		k := inKey{prev: prevV, letter: prev.OutgoingLetter(), length: edgeLength(prev, it)}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	edges := make([]Edge, 0, len(order))
	for _, k := range order {
		edges = append(edges, Edge{Start: k.prev, End: v, Letter: k.letter, Length: k.length, Multiplicity: counts[k]})
	}
	return edges
}

// IngoingEdgesNumber returns len(IngoingEdges(v)).
func (s *Storage) IngoingEdgesNumber(v int64) int { return len(s.IngoingEdges(v)) }
