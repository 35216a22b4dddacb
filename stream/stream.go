package stream

import (
	"math/big"

	"github.com/worldsender/reals/config"
	"github.com/worldsender/reals/lft"
)

// Iterator is one advancing head over a digit stream. Calling Next after it
// has returned ok=false is undefined (sources are not required to support
// resuming past exhaustion).
type Iterator interface {
	Next() (digit *big.Int, ok bool)
}

// Source is a restartable digit-stream producer: each call returns a fresh,
// independent Iterator. An operator that references the same real number
// twice (e.g. x*x) needs two independent iterator heads over it, which is
// exactly what calling a Source twice gives.
type Source func() Iterator

// funcIterator adapts a plain pull closure to the Iterator interface.
type funcIterator func() (*big.Int, bool)

func (f funcIterator) Next() (*big.Int, bool) { return f() }

// Zero is the constant stream yielding digit 0 forever: the real number 0.
func Zero() Iterator {
	zero := big.NewInt(0)
	return funcIterator(func() (*big.Int, bool) { return zero, true })
}

// ZeroSource is the restartable Source wrapping Zero.
func ZeroSource() Source { return func() Iterator { return Zero() } }

// One is the constant stream yielding digit B-1 forever: the real number 1.
func One() Iterator {
	d := config.Power2Minus1()
	return funcIterator(func() (*big.Int, bool) { return d, true })
}

// OneSource is the restartable Source wrapping One.
func OneSource() Source { return func() Iterator { return One() } }

// TransformUnary wraps an L1 operator and a single input Source into a new
// Source. The starting LFT must already be contracting; violating that is
// a programmer error (InvariantViolation), not a recoverable condition,
// since it can only happen from a bug in an operator's construction.
func TransformUnary(start *lft.L1, src Source) Source {
	if !start.IsContracting() {
		panic(&lft.InvariantViolation{Msg: "transform_unary: starting LFT is not contracting"})
	}
	return func() Iterator {
		local := start.Clone()
		in := src()
		return funcIterator(func() (*big.Int, bool) {
			for {
				if local.NextIndexToPull() == lft.NoPull {
					d := local.Extract()
					local.Normalize()
					return d, true
				}
				d, ok := in.Next()
				if !ok {
					return nil, false
				}
				local.AbsorbDigit(d)
			}
		})
	}
}

// TransformBinary wraps an L2 operator and two input Sources into a new
// Source. NextIndexToPull's return value selects which of the two input
// iterators to advance next.
func TransformBinary(start *lft.L2, xsrc, ysrc Source) Source {
	if !start.IsContracting() {
		panic(&lft.InvariantViolation{Msg: "transform_binary: starting LFT is not contracting"})
	}
	return func() Iterator {
		local := start.Clone()
		xin := xsrc()
		yin := ysrc()
		return funcIterator(func() (*big.Int, bool) {
			for {
				switch local.NextIndexToPull() {
				case lft.NoPull:
					d := local.Extract()
					local.Normalize()
					return d, true
				case 0:
					d, ok := xin.Next()
					if !ok {
						return nil, false
					}
					local.AbsorbDigitX(d)
				default:
					d, ok := yin.Next()
					if !ok {
						return nil, false
					}
					local.AbsorbDigitY(d)
				}
			}
		})
	}
}

// FromFractionSource returns the Source for FromFraction(p/q): an L1
// constant applied to the constant stream "one".
func FromFractionSource(p, q *big.Int) (Source, error) {
	m, err := lft.FromFraction(p, q)
	if err != nil {
		return nil, err
	}
	return TransformUnary(m, OneSource()), nil
}

// FromMatrixProduct builds a Source from a continued LFT product: instead
// of absorbing digits from an input stream, it composes with successive
// matrices from matrixGen (itself a restartable Source of L1 values) until
// the accumulated LFT is contracting and small enough to extract, then
// repeats.
func FromMatrixProduct(start *lft.L1, matrixGen func() func() *lft.L1) Source {
	return func() Iterator {
		local := start.Clone()
		nextMatrix := matrixGen()
		return funcIterator(func() (*big.Int, bool) {
			for !local.IsContracting() || local.NextIndexToPull() != lft.NoPull {
				local.Compose(nextMatrix())
			}
			d := local.Extract()
			local.Normalize()
			return d, true
		})
	}
}
