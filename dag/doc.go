// Package dag builds directed acyclic graphs from named node
// dictionaries. Edges are inferred from local-source variable references
// in each node's arguments, cycles and dangling references are rejected
// at build time, and one deterministic topological order is computed once
// and cached for every later evaluation.
//
// A built Graph is immutable: deriving a different graph (filtering,
// freezing) means building a new one from a new dictionary.
package dag
