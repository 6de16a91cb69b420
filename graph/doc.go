// Package graph holds a read-only index over a compacted de Bruijn graph of
// DNA k-mer junctions: the per-chromosome junction arrays, the original
// genome letters, and the adjacency/occurrence queries the block-finding
// engine walks. The only mutable state after construction is the per-junction
// "used" bit, flipped when a junction is committed to a block, and the
// Forbidden edge set accumulated as blocks are committed.
package graph
