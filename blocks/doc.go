// Package blocks implements the orchestrator that drives path.Path across a
// graph.Storage: discovering candidate seed vertices, extending each with a
// bounded-depth DFS tracked by path.BestPath, and committing winning paths as
// locally-collinear blocks.
package blocks
