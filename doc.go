// Package computegraph builds and evaluates lazy computation graphs.
//
// A graph is a named dictionary of symbolic nodes (variables, constants
// and function calls) whose local cross-references form a DAG. Nested
// expressions are flattened by the tracer, edges are inferred from
// local variable references, and evaluation walks the topological order
// against caller-supplied source namespaces. Built graphs can be
// compiled into reusable evaluation procedures, partitioned into static
// and dynamic halves, filtered down to sub-graphs, and rendered through
// the draw package.
package computegraph
