package ops

import (
	"context"
	"fmt"
	"os"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/computegraph/node"
	"github.com/vk/computegraph/registry"
)

// Operation names of the primitive set. Expression builders, registries
// and declarative definitions all refer to primitives by these names.
const (
	OpAdd      = "add"
	OpSub      = "sub"
	OpMul      = "mul"
	OpDiv      = "div"
	OpPow      = "pow"
	OpNeg      = "neg"
	OpSum      = "sum"
	OpMin      = "min"
	OpMax      = "max"
	OpGetItem  = "getitem"
	OpIdentity = "identity"
)

// EnvBackend selects the backend returned by FromEnv. Recognized value:
// "scalar"; anything else selects the vector backend.
const EnvBackend = "COMPUTEGRAPH_BACKEND"

// Backend evaluates the numeric primitives over cty values. A Backend is
// stateless and safe for concurrent use. Callers thread the backend they
// want explicitly; nodes capture the primitive of the backend that built
// them, so graphs built with different backends coexist in one process.
type Backend struct {
	name string
	k    kernels
}

// Scalar returns the portable backend computing element by element.
func Scalar() *Backend { return &Backend{name: "scalar", k: scalarKernel{}} }

// Vector returns the backend that routes list arithmetic through gonum
// kernels.
func Vector() *Backend { return &Backend{name: "vector", k: vectorKernel{}} }

// FromEnv selects a backend from the COMPUTEGRAPH_BACKEND environment
// variable, falling back to Vector.
func FromEnv() *Backend {
	if os.Getenv(EnvBackend) == "scalar" {
		return Scalar()
	}
	return Vector()
}

// Name returns "scalar" or "vector".
func (b *Backend) Name() string { return b.name }

// Callable adapts the named primitive to the node.Callable signature,
// adding arity checking. The second result is false for unknown names.
func (b *Backend) Callable(name string) (node.Callable, bool) {
	switch name {
	case OpAdd, OpSub, OpMul, OpDiv, OpPow:
		return func(_ context.Context, args []cty.Value, _ map[string]cty.Value) (cty.Value, error) {
			if len(args) != 2 {
				return cty.NilVal, fmt.Errorf("%s expects 2 arguments, got %d", name, len(args))
			}
			return b.Binary(name, args[0], args[1])
		}, true

	case OpNeg:
		return func(_ context.Context, args []cty.Value, _ map[string]cty.Value) (cty.Value, error) {
			if len(args) != 1 {
				return cty.NilVal, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
			}
			return b.Negate(args[0])
		}, true

	case OpSum, OpMin, OpMax:
		return func(_ context.Context, args []cty.Value, _ map[string]cty.Value) (cty.Value, error) {
			if len(args) != 1 {
				return cty.NilVal, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
			}
			return b.Reduce(name, args[0])
		}, true

	case OpGetItem:
		return func(_ context.Context, args []cty.Value, _ map[string]cty.Value) (cty.Value, error) {
			if len(args) != 2 {
				return cty.NilVal, fmt.Errorf("%s expects 2 arguments, got %d", name, len(args))
			}
			return GetItem(args[0], args[1])
		}, true

	case OpIdentity:
		return func(_ context.Context, args []cty.Value, _ map[string]cty.Value) (cty.Value, error) {
			if len(args) != 1 {
				return cty.NilVal, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
			}
			return args[0], nil
		}, true
	}
	return nil, false
}

// Register installs every primitive under its operation name, making
// Backend a registry.Module.
func (b *Backend) Register(r *registry.Registry) {
	for _, p := range []struct {
		name  string
		arity int
	}{
		{OpAdd, 2}, {OpSub, 2}, {OpMul, 2}, {OpDiv, 2}, {OpPow, 2},
		{OpGetItem, 2},
		{OpNeg, 1}, {OpSum, 1}, {OpMin, 1}, {OpMax, 1}, {OpIdentity, 1},
	} {
		fn, ok := b.Callable(p.name)
		if !ok {
			panic(fmt.Sprintf("ops: primitive %q has no callable", p.name))
		}
		r.Register(p.name, registry.Entry{Fn: fn, Arity: p.arity})
	}
}
