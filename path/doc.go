// Package path implements the central mutable state machine of the
// block-finding engine: a growable path of graph edges anchored at an origin
// vertex, and the set of parallel genomic occurrences ("instances") that ride
// along with it. Path exposes push/pop on either end with automatic
// instance re-synchronization and rollback on flank-budget violation, plus
// the scoring and best-snapshot machinery BlocksFinder drives its DFS with.
package path
