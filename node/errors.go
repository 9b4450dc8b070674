package node

import "errors"

// ErrKeyLookup marks failures to resolve a symbolic reference: a source
// that was never supplied, a key missing from its source, or a local
// reference with no producer in the enclosing graph. Wrap with %w and
// match with errors.Is.
var ErrKeyLookup = errors.New("key lookup failed")
