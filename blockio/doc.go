// Package blockio handles every byte this repository reads or writes: the
// binary junctions stream and companion FASTA that feed graph.NewStorage,
// and the coverage, coordinate, and sequence reports produced from a
// completed blocks.Finder run.
package blockio
