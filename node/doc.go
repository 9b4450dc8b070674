// Package node defines the vertex specifications of a computation graph:
// symbolic variables, embedded constants, and deferred function calls.
//
// A Node is a pure description. Nothing is computed at construction time;
// evaluation happens only when a node (or the graph containing it) is
// explicitly evaluated against a set of input sources. Values flowing in
// and out of nodes are cty.Value, so graph results can be inspected,
// converted to native Go types, and compared without reflection.
//
// For the layers that trace, order and execute dictionaries of nodes, see
// the trace and dag packages and the computegraph root package.
package node
