package stream

import (
	"math/big"

	"github.com/worldsender/reals/lft"
)

var bigOne = big.NewInt(1)

// exactlyConvertible reports whether repeatedly dividing bt by bf reaches
// exactly 1, i.e. bt is bf raised to some non-negative integer power.
func exactlyConvertible(bf, bt *big.Int) bool {
	bt = new(big.Int).Set(bt)
	mod := new(big.Int)
	for bt.Cmp(bigOne) > 0 {
		mod.Mod(bt, bf)
		if mod.Sign() != 0 {
			return false
		}
		bt.Quo(bt, bf)
	}
	return true
}

// discreteLog returns n such that bt = bf^n, given exactlyConvertible(bf, bt).
func discreteLog(bf, bt *big.Int) int {
	bt = new(big.Int).Set(bt)
	n := 0
	for bt.Cmp(bigOne) > 0 {
		bt.Quo(bt, bf)
		n++
	}
	return n
}

// largestSharedPower returns the largest base s such that both bf and bt
// are integer powers of s, via a Euclid-style reduction on bases rather
// than values: divide the larger repeatedly by the smaller while it
// divides evenly, then swap and continue until one side reaches 1. If two
// swaps in a row make no progress, bf and bt have no common integer root
// at all, and the result is 1.
func largestSharedPower(bf, bt *big.Int) *big.Int {
	bf = new(big.Int).Set(bf)
	bt = new(big.Int).Set(bt)
	mod := new(big.Int)
	stalled := 0
	for bt.Cmp(bigOne) > 0 {
		progressed := false
		for {
			mod.Mod(bf, bt)
			if mod.Sign() != 0 {
				break
			}
			bf.Quo(bf, bt)
			progressed = true
		}
		if !progressed {
			stalled++
			if stalled >= 2 {
				return big.NewInt(1)
			}
		} else {
			stalled = 0
		}
		bf, bt = bt, bf
	}
	return bf
}

// ConvertBase converts a digit stream from origBase to targetBase: when the
// bases are related by an integer power, digits are packed or split directly;
// otherwise conversion routes through their largest shared power, and if the
// bases share no common power at all, the conversion is NonRepresentable.
func ConvertBase(src Source, origBase, targetBase *big.Int) (Source, error) {
	if origBase.Cmp(targetBase) == 0 {
		return src, nil
	}
	if exactlyConvertible(origBase, targetBase) {
		inPerOut := discreteLog(origBase, targetBase)
		return packSource(src, origBase, inPerOut), nil
	}
	if exactlyConvertible(targetBase, origBase) {
		outPerIn := discreteLog(targetBase, origBase)
		return splitSource(src, targetBase, outPerIn), nil
	}
	shared := largestSharedPower(targetBase, origBase)
	if shared.Cmp(bigOne) == 0 {
		return nil, &lft.NonRepresentable{Msg: "no shared integer power between bases"}
	}
	mid, err := ConvertBase(src, origBase, shared)
	if err != nil {
		return nil, err
	}
	return ConvertBase(mid, shared, targetBase)
}

// packSource combines inPerOut consecutive input digits (most significant
// first) into one output digit of the larger base.
func packSource(src Source, origBase *big.Int, inPerOut int) Source {
	return func() Iterator {
		in := src()
		return funcIterator(func() (*big.Int, bool) {
			out := big.NewInt(0)
			for i := 0; i < inPerOut; i++ {
				d, ok := in.Next()
				if !ok {
					return nil, false
				}
				out.Mul(out, origBase)
				out.Add(out, d)
			}
			return out, true
		})
	}
}

// splitSource splits each input digit into outPerIn output digits of the
// smaller targetBase (most significant first). A signed digit has no single
// canonical split, since the sign can be pushed into any of the output
// digits; this one truncates toward zero, so every output digit carries the
// input digit's sign.
func splitSource(src Source, targetBase *big.Int, outPerIn int) Source {
	return func() Iterator {
		in := src()
		var pending []*big.Int
		return funcIterator(func() (*big.Int, bool) {
			for len(pending) == 0 {
				d, ok := in.Next()
				if !ok {
					return nil, false
				}
				pending = splitDigit(d, targetBase, outPerIn)
			}
			next := pending[0]
			pending = pending[1:]
			return next, true
		})
	}
}

// splitDigit splits p into outPerIn digits of targetBase, most significant
// digit first.
func splitDigit(p *big.Int, targetBase *big.Int, outPerIn int) []*big.Int {
	out := make([]*big.Int, outPerIn)
	rest := new(big.Int).Set(p)
	for i := outPerIn - 1; i >= 0; i-- {
		basePow := new(big.Int).Exp(targetBase, big.NewInt(int64(i)), nil)
		split := new(big.Int).Quo(rest, basePow) // truncated toward zero
		rest = new(big.Int).Sub(rest, new(big.Int).Mul(split, basePow))
		out[outPerIn-1-i] = split
	}
	return out
}
