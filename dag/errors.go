package dag

import (
	"fmt"
	"strings"

	"github.com/vk/computegraph/node"
)

// CycleError reports a dependency cycle among the listed keys. It matches
// node.ErrKeyLookup under errors.Is: a cyclic local reference can never
// resolve to an already-produced node, so callers treating lookup
// failures uniformly catch cycles too.
type CycleError struct {
	Keys []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle involving %s", strings.Join(e.Keys, ", "))
}

// Is makes errors.Is(err, node.ErrKeyLookup) true for cycle errors.
func (e *CycleError) Is(target error) bool {
	return target == node.ErrKeyLookup
}
