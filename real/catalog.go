package real

import (
	"fmt"

	"github.com/worldsender/reals/digitsource"
	"github.com/worldsender/reals/lft"
	"github.com/worldsender/reals/stream"
)

// Named operator catalog. Each is built once at package init;
// NewUnaryOp/NewBinaryOp panic at that point if a coefficient set were ever
// non-contracting, the same way regexp.MustCompile panics on a malformed
// literal.
var (
	// Identity is the identity unary operator: Apply(x) == x.
	Identity = NewUnaryOp(1, 0, 0, 1)

	// ThirdOf computes x / 3.
	ThirdOf = NewUnaryOp(1, 0, 0, 3)

	// XPlus3Over4 computes (x + 3) / 4.
	XPlus3Over4 = NewUnaryOp(1, 0, 3, 4)

	// OneOverXPlus2 computes 1 / (x + 2).
	OneOverXPlus2 = NewUnaryOp(0, 1, 1, 2)

	// Mul computes x * y.
	Mul = NewBinaryOp(1, 0, 0, 0, 0, 0, 0, 1)

	// Midpoint computes (x + y) / 2.
	Midpoint = NewBinaryOp(0, 0, 1, 0, 1, 0, 0, 2)
)

// Zero is the constant real 0.
var Zero = fromSource(stream.ZeroSource())

// One is the constant real 1.
var One = fromSource(stream.OneSource())

// log2MatrixSource is the restartable generator of successive LFTs
// L1(-n, 2n+1, -4n, 7n+3) for n = 1, 2, 3, ..., the continued-fraction
// terms for log(2).
func log2MatrixSource() func() *lft.L1 {
	n := int64(0)
	return func() *lft.L1 {
		n++
		return lft.NewL1(-n, 2*n+1, -4*n, 7*n+3)
	}
}

// Log2 is ln(2) ~= 0.6931, generated by composing the continued-LFT-product
// from log2MatrixSource instead of absorbing digits from an input stream.
// ln(2) already lies in [-1, 1], so the value is not shifted or scaled.
var Log2 = fromSource(stream.FromMatrixProduct(lft.NewL1(1, 2, 4, 6), log2MatrixSource))

// PiMinus3 is the constant pi - 3, produced by digitsource.PiMinus3's BBP
// generator. Computing it can only fail if the engine's own base-conversion
// constants are inconsistent, which is an InvariantViolation (a bug in this
// package), not a condition callers can recover from — hence the
// panic-at-init pattern rather than threading an error through every
// catalog access.
var PiMinus3 = mustPiMinus3()

func mustPiMinus3() Real {
	src, err := digitsource.PiMinus3()
	if err != nil {
		panic(&lft.InvariantViolation{Msg: fmt.Sprintf("digitsource.PiMinus3: %v", err)})
	}
	return fromSource(src)
}
