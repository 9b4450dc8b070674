package ops

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// kernels is the float layer a backend computes with. Slices passed to
// binary are pre-aligned to equal length by the caller.
type kernels interface {
	binary(op string, dst, x, y []float64) error
	neg(dst, x []float64)
	reduce(op string, xs []float64) (float64, error)
}

var errEmptyReduce = errors.New("cannot reduce an empty list")

type scalarKernel struct{}

func (scalarKernel) binary(op string, dst, x, y []float64) error {
	switch op {
	case OpAdd:
		for i := range dst {
			dst[i] = x[i] + y[i]
		}
	case OpSub:
		for i := range dst {
			dst[i] = x[i] - y[i]
		}
	case OpMul:
		for i := range dst {
			dst[i] = x[i] * y[i]
		}
	case OpDiv:
		for i := range dst {
			dst[i] = x[i] / y[i]
		}
	case OpPow:
		for i := range dst {
			dst[i] = math.Pow(x[i], y[i])
		}
	default:
		return fmt.Errorf("unknown binary operation %q", op)
	}
	return nil
}

func (scalarKernel) neg(dst, x []float64) {
	for i := range dst {
		dst[i] = -x[i]
	}
}

func (scalarKernel) reduce(op string, xs []float64) (float64, error) {
	switch op {
	case OpSum:
		s := 0.0
		for _, f := range xs {
			s += f
		}
		return s, nil
	case OpMin:
		if len(xs) == 0 {
			return 0, errEmptyReduce
		}
		m := xs[0]
		for _, f := range xs[1:] {
			if f < m {
				m = f
			}
		}
		return m, nil
	case OpMax:
		if len(xs) == 0 {
			return 0, errEmptyReduce
		}
		m := xs[0]
		for _, f := range xs[1:] {
			if f > m {
				m = f
			}
		}
		return m, nil
	default:
		return 0, fmt.Errorf("unknown reduction %q", op)
	}
}

type vectorKernel struct{}

func (vectorKernel) binary(op string, dst, x, y []float64) error {
	switch op {
	case OpAdd:
		floats.AddTo(dst, x, y)
	case OpSub:
		floats.SubTo(dst, x, y)
	case OpMul:
		floats.MulTo(dst, x, y)
	case OpDiv:
		floats.DivTo(dst, x, y)
	case OpPow:
		// gonum has no pow kernel.
		for i := range dst {
			dst[i] = math.Pow(x[i], y[i])
		}
	default:
		return fmt.Errorf("unknown binary operation %q", op)
	}
	return nil
}

func (vectorKernel) neg(dst, x []float64) {
	floats.ScaleTo(dst, -1, x)
}

func (vectorKernel) reduce(op string, xs []float64) (float64, error) {
	switch op {
	case OpSum:
		return floats.Sum(xs), nil
	case OpMin:
		if len(xs) == 0 {
			return 0, errEmptyReduce
		}
		return floats.Min(xs), nil
	case OpMax:
		if len(xs) == 0 {
			return 0, errEmptyReduce
		}
		return floats.Max(xs), nil
	default:
		return 0, fmt.Errorf("unknown reduction %q", op)
	}
}
