// Package ops supplies the numeric primitives used by computation graphs
// and the expression builders that assemble call nodes from them.
//
// Two interchangeable backends implement the primitive set: Scalar walks
// values element by element, Vector routes bulk list arithmetic through
// gonum kernels. Both produce identical results. Callers construct the
// backend they want (Scalar, Vector, or FromEnv) and thread it
// explicitly; each built node captures the primitive of that backend.
package ops
