package stream

import (
	"math/big"
	"testing"

	"github.com/worldsender/reals/config"
	"github.com/worldsender/reals/lft"
)

func take(t *testing.T, src Source, n int) []*big.Int {
	t.Helper()
	it := src()
	out := make([]*big.Int, 0, n)
	for i := 0; i < n; i++ {
		d, ok := it.Next()
		if !ok {
			t.Fatalf("stream exhausted after %d digits, wanted %d", i, n)
		}
		out = append(out, d)
	}
	return out
}

func TestZeroSourceYieldsZero(t *testing.T) {
	for _, d := range take(t, ZeroSource(), 16) {
		if d.Sign() != 0 {
			t.Errorf("zero stream yielded %v", d)
		}
	}
}

func TestOneSourceYieldsPowerMinus1(t *testing.T) {
	want := config.Power2Minus1()
	for _, d := range take(t, OneSource(), 16) {
		if d.Cmp(want) != 0 {
			t.Errorf("one stream yielded %v, want %v", d, want)
		}
	}
}

// TestTransformUnaryIdentity checks the round-trip law: the identity
// unary operator produces the same digits as its input.
func TestTransformUnaryIdentity(t *testing.T) {
	src, err := FromFractionSource(big.NewInt(3), big.NewInt(4))
	if err != nil {
		t.Fatal(err)
	}
	transformed := TransformUnary(lft.IdentityL1(), src)

	got := take(t, transformed, 8)
	want := take(t, src, 8)
	for i := range want {
		if got[i].Cmp(want[i]) != 0 {
			t.Errorf("digit %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTransformUnaryRejectsNonContracting(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for non-contracting start")
		}
	}()
	nonContracting := lft.NewL1(2, 0, 0, 1) // L(x) = 2x, escapes [-1, 1]
	TransformUnary(nonContracting, ZeroSource())
}

func TestTransformBinaryRestartableIndependently(t *testing.T) {
	x, err := FromFractionSource(big.NewInt(1), big.NewInt(3))
	if err != nil {
		t.Fatal(err)
	}
	mul := lft.NewL2(1, 0, 0, 0, 0, 0, 0, 1)
	squared := TransformBinary(mul, x, x)

	// Two independent reads from the same restartable Source must agree.
	a := take(t, squared, 4)
	b := take(t, squared, 4)
	for i := range a {
		if a[i].Cmp(b[i]) != 0 {
			t.Errorf("digit %d differs between independent reads: %v vs %v", i, a[i], b[i])
		}
	}
}
