package ops

import "github.com/vk/computegraph/node"

// The expression builders assemble call nodes over the primitive set.
// Arguments are coerced with node.ToArg, so nodes, cty values and plain
// Go values mix freely. Each node captures the primitive of the backend
// that built it; evaluating the node later always runs that backend.

// Add builds x + y.
func (b *Backend) Add(x, y any) *node.Node { return b.binOp(OpAdd, x, y) }

// Sub builds x - y.
func (b *Backend) Sub(x, y any) *node.Node { return b.binOp(OpSub, x, y) }

// Mul builds x * y.
func (b *Backend) Mul(x, y any) *node.Node { return b.binOp(OpMul, x, y) }

// Div builds x / y.
func (b *Backend) Div(x, y any) *node.Node { return b.binOp(OpDiv, x, y) }

// Pow builds x ** y.
func (b *Backend) Pow(x, y any) *node.Node { return b.binOp(OpPow, x, y) }

// Neg builds -x.
func (b *Backend) Neg(x any) *node.Node { return b.unOp(OpNeg, x) }

// Sum builds the sum reduction of x.
func (b *Backend) Sum(x any) *node.Node { return b.unOp(OpSum, x) }

// Min builds the minimum reduction of x.
func (b *Backend) Min(x any) *node.Node { return b.unOp(OpMin, x) }

// Max builds the maximum reduction of x.
func (b *Backend) Max(x any) *node.Node { return b.unOp(OpMax, x) }

// Get builds container[key].
func (b *Backend) Get(container, key any) *node.Node { return b.binOp(OpGetItem, container, key) }

// Identity builds a pass-through of x.
func (b *Backend) Identity(x any) *node.Node { return b.unOp(OpIdentity, x) }

func (b *Backend) binOp(op string, x, y any) *node.Node {
	fn, _ := b.Callable(op)
	return node.Call(op, fn, x, y)
}

func (b *Backend) unOp(op string, x any) *node.Node {
	fn, _ := b.Callable(op)
	return node.Call(op, fn, x)
}
