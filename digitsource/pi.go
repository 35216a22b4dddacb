// Package digitsource implements external digit producers that sit outside
// the core engine: concrete sources of digits an operator can consume, kept
// separate from the lft/stream/real packages so the engine core doesn't
// need to know how any particular constant is generated. PiMinus3 is the
// only one provided, computing pi-3 via the Bailey-Borwein-Plouffe formula.
package digitsource

import (
	"math/big"

	"github.com/worldsender/reals/config"
	"github.com/worldsender/reals/stream"
)

const (
	bbpShift    = 4 * 14 // 56
	bbpExtShift = 4 * 6  // 24, digits after the last 6 hex digits are unreliable
	bbpExtBits  = 4 * 8  // 32, the leading 8 reliable hex digits kept per round
)

var (
	bbpM    = new(big.Int).Lsh(big.NewInt(1), bbpShift)
	bbpMask = new(big.Int).Sub(bbpM, big.NewInt(1))
	extMask = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bbpExtBits), big.NewInt(1))
	baseTwoPow32 = new(big.Int).Lsh(big.NewInt(1), 32)
)

// bbpS computes the BBP partial sum S(j, n) used by the Bailey-Borwein-
// Plouffe formula for hexadecimal digits of pi, combining a modular-power
// left sum with a rapidly-converging fractional tail.
func bbpS(j, n int) *big.Int {
	s := big.NewInt(0)
	for k := 0; k <= n; k++ {
		r := big.NewInt(int64(8*k + j))
		modpow := new(big.Int).Exp(big.NewInt(16), big.NewInt(int64(n-k)), r)
		term := new(big.Int).Quo(new(big.Int).Lsh(modpow, bbpShift), r)
		s.Add(s, term)
		s.And(s, bbpMask)
	}

	t := big.NewInt(0)
	for j2 := 1; ; j2++ {
		xp := new(big.Int).Quo(bbpM, new(big.Int).Exp(big.NewInt(16), big.NewInt(int64(j2)), nil))
		denom := big.NewInt(int64(8*(n+j2) + j))
		term := new(big.Int).Quo(xp, denom)
		newT := new(big.Int).Add(t, term)
		if newT.Cmp(t) == 0 {
			break
		}
		t = newT
	}
	return s.Add(s, t)
}

// piMinus3Base2_32 yields pi-3 as unsigned digits of base 2^32 (eight hex
// digits per output value), leading digit first.
func piMinus3Base2_32() stream.Iterator {
	n := 0
	return iteratorFunc(func() (*big.Int, bool) {
		s1 := new(big.Int).Mul(big.NewInt(4), bbpS(1, n))
		s4 := new(big.Int).Mul(big.NewInt(2), bbpS(4, n))
		s5 := bbpS(5, n)
		s6 := bbpS(6, n)
		x := new(big.Int).Sub(s1, s4)
		x.Sub(x, s5)
		x.Sub(x, s6)
		x.Rsh(x, bbpExtShift)
		x.And(x, extMask)
		n += 8
		return x, true
	})
}

type iteratorFunc func() (*big.Int, bool)

func (f iteratorFunc) Next() (*big.Int, bool) { return f() }

// PiMinus3 returns the restartable Source of pi-3 in the engine's native
// base B, converted from the BBP generator's base-2^32 digits via
// stream.ConvertBase.
func PiMinus3() (stream.Source, error) {
	raw := stream.Source(func() stream.Iterator { return piMinus3Base2_32() })
	return stream.ConvertBase(raw, baseTwoPow32, config.Power2())
}
