// Package real is the engine's numeric façade: it builds Real values from
// fractions or named digit sources, composes them through unary/binary LFT
// operators, and formats a finite prefix as a rational or hexadecimal
// interval.
package real

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/worldsender/reals/lft"
	"github.com/worldsender/reals/stream"
)

// Real is an exact real number in [-1, 1], represented by its restartable
// digit-stream producer. The zero value is not meaningful; construct one
// via FromFraction, an operator's Apply, or one of the catalog constants.
type Real struct {
	src stream.Source
}

func fromSource(src stream.Source) Real { return Real{src: src} }

// Source returns the underlying restartable digit-stream producer, for
// callers (format.go, cmd/reals) that need to drive it directly.
func (r Real) Source() stream.Source { return r.src }

// FromFraction builds the real number p/q, requiring |p/q| <= 1 and q != 0.
func FromFraction(p, q int64) (Real, error) {
	return FromFractionBig(big.NewInt(p), big.NewInt(q))
}

// FromFractionBig is FromFraction for arbitrary-precision numerator and
// denominator.
func FromFractionBig(p, q *big.Int) (Real, error) {
	src, err := stream.FromFractionSource(p, q)
	if err != nil {
		return Real{}, errors.Wrapf(err, "real.FromFraction(%v, %v)", p, q)
	}
	return fromSource(src), nil
}

// UnaryOp wraps an L1 operator: applying it to a Real composes the operator
// onto that real's digit stream.
type UnaryOp struct {
	m *lft.L1
}

// NewUnaryOp builds a UnaryOp from literal matrix coefficients. A
// non-contracting starting LFT is a programmer error: it panics with
// *lft.InvariantViolation rather than returning an error, the same
// construction-time rejection stream.TransformUnary itself performs.
func NewUnaryOp(a, b, c, d int64) UnaryOp {
	m := lft.NewL1(a, b, c, d)
	if !m.IsContracting() {
		panic(&lft.InvariantViolation{Msg: fmt.Sprintf("unary operator %v is not contracting", m)})
	}
	return UnaryOp{m: m}
}

// Apply returns the real number obtained by composing op onto x's stream.
func (op UnaryOp) Apply(x Real) Real {
	return fromSource(stream.TransformUnary(op.m, x.src))
}

// BinaryOp wraps an L2 operator: applying it to two Reals composes the
// operator onto both digit streams.
type BinaryOp struct {
	m *lft.L2
}

// NewBinaryOp builds a BinaryOp from literal tensor coefficients, with the
// same construction-time contraction check as NewUnaryOp.
func NewBinaryOp(a, b, c, d, e, f, g, h int64) BinaryOp {
	m := lft.NewL2(a, b, c, d, e, f, g, h)
	if !m.IsContracting() {
		panic(&lft.InvariantViolation{Msg: fmt.Sprintf("binary operator %v is not contracting", m)})
	}
	return BinaryOp{m: m}
}

// Apply returns the real number obtained by composing op onto x and y's
// streams.
func (op BinaryOp) Apply(x, y Real) Real {
	return fromSource(stream.TransformBinary(op.m, x.src, y.src))
}
