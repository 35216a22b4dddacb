package lft

import (
	"fmt"
	"hash/fnv"
	"math/big"

	"github.com/worldsender/reals/config"
)

// Corner identifies one of the four corners of [-1, 1]^2, named by the sign
// of (x, y): M = -1, P = +1.
type Corner int

const (
	CornerMM Corner = iota // (-1, -1)
	CornerMP                // (-1, +1)
	CornerPM                // (+1, -1)
	CornerPP                // (+1, +1)
)

func (c Corner) String() string {
	return [...]string{"MM", "MP", "PM", "PP"}[c]
}

// Mode2 is the (min-corner, max-corner) classification of an L2's image
// over the four corners of its domain. Min and Max are always distinct.
type Mode2 struct {
	Min, Max Corner
}

func (m Mode2) String() string { return m.Min.String() + "_" + m.Max.String() }

var (
	modeMMPP = Mode2{CornerMM, CornerPP}
	modeMPPP = Mode2{CornerMP, CornerPP}
	modePMPP = Mode2{CornerPM, CornerPP}
	modeMMPM = Mode2{CornerMM, CornerPM}
	modeMPPM = Mode2{CornerMP, CornerPM}
	modePPPM = Mode2{CornerPP, CornerPM}
	modeMMMP = Mode2{CornerMM, CornerMP}
	modePMMP = Mode2{CornerPM, CornerMP}
	modePPMP = Mode2{CornerPP, CornerMP}
	modeMPMM = Mode2{CornerMP, CornerMM}
	modePMMM = Mode2{CornerPM, CornerMM}
	modePPMM = Mode2{CornerPP, CornerMM}
)

// L2 is a two-dimensional bilinear LFT
//
//	L(x, y) = (a*xy + c*x + e*y + g) / (b*xy + d*x + f*y + h)
//
// stored as the 2x4 matrix [a,b,c,d,e,f,g,h]. All operations mutate the
// receiver.
type L2 struct {
	a, b, c, d, e, f, g, h *big.Int
}

// NewL2 builds an L2 from int64 coefficients.
func NewL2(a, b, c, d, e, f, g, h int64) *L2 {
	return &L2{
		big.NewInt(a), big.NewInt(b), big.NewInt(c), big.NewInt(d),
		big.NewInt(e), big.NewInt(f), big.NewInt(g), big.NewInt(h),
	}
}

func newL2Big(a, b, c, d, e, f, g, h *big.Int) *L2 {
	return &L2{a, b, c, d, e, f, g, h}
}

func (m *L2) String() string {
	return fmt.Sprintf("[%v %v %v %v; %v %v %v %v]", m.a, m.c, m.e, m.g, m.b, m.d, m.f, m.h)
}

// Clone returns an independent copy.
func (m *L2) Clone() *L2 {
	return newL2Big(
		new(big.Int).Set(m.a), new(big.Int).Set(m.b), new(big.Int).Set(m.c), new(big.Int).Set(m.d),
		new(big.Int).Set(m.e), new(big.Int).Set(m.f), new(big.Int).Set(m.g), new(big.Int).Set(m.h),
	)
}

// TimesY replaces the receiver with self composed with other on the y axis:
// self(x, y) := self(x, other(y)).
func (m *L2) TimesY(other *L1) {
	a, b, c, d, e, f, g, h := m.a, m.b, m.c, m.d, m.e, m.f, m.g, m.h
	u, v, w, x := other.a, other.b, other.c, other.d
	m.a = add(mul(a, u), mul(c, v))
	m.b = add(mul(b, u), mul(d, v))
	m.c = add(mul(a, w), mul(c, x))
	m.d = add(mul(b, w), mul(d, x))
	m.e = add(mul(e, u), mul(g, v))
	m.f = add(mul(f, u), mul(h, v))
	m.g = add(mul(e, w), mul(g, x))
	m.h = add(mul(f, w), mul(h, x))
}

// TimesX replaces the receiver with self composed with other on the x axis:
// self(x, y) := self(other(x), y).
func (m *L2) TimesX(other *L1) {
	a, b, c, d, e, f, g, h := m.a, m.b, m.c, m.d, m.e, m.f, m.g, m.h
	u, v, w, x := other.a, other.b, other.c, other.d
	m.a = add(mul(a, u), mul(e, v))
	m.b = add(mul(b, u), mul(f, v))
	m.c = add(mul(c, u), mul(g, v))
	m.d = add(mul(d, u), mul(h, v))
	m.e = add(mul(a, w), mul(e, x))
	m.f = add(mul(b, w), mul(f, x))
	m.g = add(mul(c, w), mul(g, x))
	m.h = add(mul(d, w), mul(h, x))
}

// AbsorbDigitY composes the receiver with DigitL1(n) on the y axis:
// self(x, y) := self(x, digit(n) applied to y's stream position).
func (m *L2) AbsorbDigitY(n *big.Int) {
	requireDigitRange(n)
	e := uint(config.Exponent)
	a, b, c, d, ee, f, g, h := m.a, m.b, m.c, m.d, m.e, m.f, m.g, m.h
	m.c = add(mul(a, n), new(big.Int).Lsh(c, e))
	m.d = add(mul(b, n), new(big.Int).Lsh(d, e))
	m.g = add(mul(ee, n), new(big.Int).Lsh(g, e))
	m.h = add(mul(f, n), new(big.Int).Lsh(h, e))
}

// AbsorbDigitX composes the receiver with DigitL1(n) on the x axis:
// self(x, y) := self(digit(n) applied to x's stream position, y).
func (m *L2) AbsorbDigitX(n *big.Int) {
	requireDigitRange(n)
	exp := uint(config.Exponent)
	a, b, c, d := m.a, m.b, m.c, m.d
	m.e = add(mul(a, n), new(big.Int).Lsh(m.e, exp))
	m.f = add(mul(b, n), new(big.Int).Lsh(m.f, exp))
	m.g = add(mul(c, n), new(big.Int).Lsh(m.g, exp))
	m.h = add(mul(d, n), new(big.Int).Lsh(m.h, exp))
}

// invTimesDigit replaces self with DigitL1(n)^-1 ∘ self (applied to the
// output), the mutation Extract performs after choosing a digit.
func (m *L2) invTimesDigit(n *big.Int) {
	exp := uint(config.Exponent)
	a, b, c, d, e, f, g, h := m.a, m.b, m.c, m.d, m.e, m.f, m.g, m.h
	v := new(big.Int).Neg(n)
	m.a = add(new(big.Int).Lsh(a, exp), mul(v, b))
	m.c = add(new(big.Int).Lsh(c, exp), mul(v, d))
	m.e = add(new(big.Int).Lsh(e, exp), mul(v, f))
	m.g = add(new(big.Int).Lsh(g, exp), mul(v, h))
	// b, d, f, h unchanged.
}

// Normalize divides all eight entries by their GCD.
func (m *L2) Normalize() {
	g := gcd8(m.a, m.b, m.c, m.d, m.e, m.f, m.g, m.h)
	if g.Cmp(one) <= 0 {
		return
	}
	m.a = new(big.Int).Quo(m.a, g)
	m.b = new(big.Int).Quo(m.b, g)
	m.c = new(big.Int).Quo(m.c, g)
	m.d = new(big.Int).Quo(m.d, g)
	m.e = new(big.Int).Quo(m.e, g)
	m.f = new(big.Int).Quo(m.f, g)
	m.g = new(big.Int).Quo(m.g, g)
	m.h = new(big.Int).Quo(m.h, g)
}

func gcd8(a, b, c, d, e, f, g, h *big.Int) *big.Int {
	x := gcd4(a, b, c, d)
	y := gcd4(e, f, g, h)
	r := new(big.Int).GCD(nil, nil, x, y)
	if r.Sign() == 0 {
		return big.NewInt(1)
	}
	return r
}

// --- monotonicity: six pairwise corner comparisons ---

func (m *L2) determineXM() bool { // MM < MP
	return mul(sub(m.g, m.c), sub(m.f, m.b)).Cmp(mul(sub(m.e, m.a), sub(m.h, m.d))) < 0
}

func (m *L2) determineXP() bool { // PM < PP
	return mul(add(m.g, m.c), add(m.f, m.b)).Cmp(mul(add(m.e, m.a), add(m.h, m.d))) < 0
}

func (m *L2) determineYM() bool { // MM < PM
	return mul(sub(m.g, m.e), sub(m.d, m.b)).Cmp(mul(sub(m.c, m.a), sub(m.h, m.f))) < 0
}

func (m *L2) determineYP() bool { // MP < PP
	return mul(add(m.g, m.e), add(m.d, m.b)).Cmp(mul(add(m.c, m.a), add(m.h, m.f))) < 0
}

func (m *L2) determineCrossMMPP() bool { // MM < PP
	return mul(add(m.g, m.a), add(m.d, m.f)).Cmp(mul(add(m.c, m.e), add(m.h, m.b))) < 0
}

func (m *L2) determineCrossMPPM() bool { // MP < PM
	return mul(sub(m.g, m.a), sub(m.d, m.f)).Cmp(mul(sub(m.c, m.e), sub(m.h, m.b))) < 0
}

// Monotonicity classifies the image by walking a decision tree built from
// the six pairwise corner comparisons above; four of the six tests are
// evaluated along any given path (both x-edge tests, then either both
// y-edge tests or both diagonal tests).
func (m *L2) Monotonicity() Mode2 {
	xm, xp := m.determineXM(), m.determineXP()
	switch {
	case xm && xp:
		ym, yp := m.determineYM(), m.determineYP()
		switch {
		case ym && yp:
			return modeMMPP
		case yp:
			return modePMPP
		case ym:
			return modeMMMP
		default:
			return modePMMP
		}
	case xp: // !xm
		mmpp, mppm := m.determineCrossMMPP(), m.determineCrossMPPM()
		switch {
		case mmpp && mppm:
			return modeMPPP
		case mmpp:
			return modePMPP
		case mppm:
			return modeMPMM
		default:
			return modePMMM
		}
	case xm: // !xp
		mmpp, mppm := m.determineCrossMMPP(), m.determineCrossMPPM()
		switch {
		case mmpp && mppm:
			return modeMMPM
		case mmpp:
			return modeMMMP
		case mppm:
			return modePPPM
		default:
			return modePPMP
		}
	default: // !xm && !xp
		ym, yp := m.determineYM(), m.determineYP()
		switch {
		case ym && yp:
			return modeMPPM
		case yp:
			return modeMPMM
		case ym:
			return modePPPM
		default:
			return modePPMM
		}
	}
}

// cornerValue returns the (numerator, denominator) of L evaluated at the
// given corner. Used both by Extract (for the min corner) and by Bounds
// (for all four).
func (m *L2) cornerValue(c Corner) (num, den *big.Int) {
	a, b, cc, d, e, f, g, h := m.a, m.b, m.c, m.d, m.e, m.f, m.g, m.h
	switch c {
	case CornerMM:
		return add(sub(sub(a, cc), e), g), add(sub(sub(b, d), f), h)
	case CornerMP:
		return add(add(sub(new(big.Int).Neg(a), cc), e), g), add(add(sub(new(big.Int).Neg(b), d), f), h)
	case CornerPM:
		return add(sub(add(new(big.Int).Neg(a), cc), e), g), add(sub(add(new(big.Int).Neg(b), d), f), h)
	default: // CornerPP
		return add(add(add(a, cc), e), g), add(add(add(b, d), f), h)
	}
}

// lengthNumDen returns (num, den) for the current mode such that the image
// length is 2*num/den. Kept as a fully enumerated twelve-case table rather than
// reduced to the four-corner dedup cornerValue uses, because unlike the
// min-corner formula, the sign of each entry depends on evaluation
// direction (max-minus-min), not just on which corner is named.
func (m *L2) lengthNumDen(mode Mode2) (num, den *big.Int) {
	a, b, c, d, e, f, g, h := m.a, m.b, m.c, m.d, m.e, m.f, m.g, m.h
	switch mode {
	case modeMMPP:
		return sub(mul(add(c, e), add(h, b)), mul(add(g, a), add(d, f))), sub(mul(add(h, b), add(h, b)), mul(add(d, f), add(d, f)))
	case modeMPPP:
		return sub(mul(add(c, a), add(h, f)), mul(add(g, e), add(d, b))), sub(mul(add(h, f), add(h, f)), mul(add(d, b), add(d, b)))
	case modePMPP:
		return sub(mul(add(e, a), add(h, d)), mul(add(g, c), add(f, b))), sub(mul(add(h, d), add(h, d)), mul(add(f, b), add(f, b)))
	case modeMMPM:
		return sub(mul(sub(c, a), sub(h, f)), mul(sub(g, e), sub(d, b))), sub(mul(sub(h, f), sub(h, f)), mul(sub(d, b), sub(d, b)))
	case modeMPPM:
		return sub(mul(sub(c, e), sub(h, b)), mul(sub(g, a), sub(d, f))), sub(mul(sub(h, b), sub(h, b)), mul(sub(d, f), sub(d, f)))
	case modePPPM:
		return sub(mul(add(g, c), add(f, b)), mul(add(e, a), add(h, d))), sub(mul(add(h, d), add(h, d)), mul(add(f, b), add(f, b)))
	case modeMMMP:
		return sub(mul(sub(e, a), sub(h, d)), mul(sub(g, c), sub(f, b))), sub(mul(sub(h, d), sub(h, d)), mul(sub(f, b), sub(f, b)))
	case modePMMP:
		return sub(mul(sub(g, a), sub(d, f)), mul(sub(c, e), sub(h, b))), sub(mul(sub(h, b), sub(h, b)), mul(sub(d, f), sub(d, f)))
	case modePPMP:
		return sub(mul(add(g, e), add(d, b)), mul(add(c, a), add(h, f))), sub(mul(add(h, f), add(h, f)), mul(add(d, b), add(d, b)))
	case modeMPMM:
		return sub(mul(sub(g, c), sub(f, b)), mul(sub(e, a), sub(h, d))), sub(mul(sub(h, d), sub(h, d)), mul(sub(f, b), sub(f, b)))
	case modePMMM:
		return sub(mul(sub(g, e), sub(d, b)), mul(sub(c, a), sub(h, f))), sub(mul(sub(h, f), sub(h, f)), mul(sub(d, b), sub(d, b)))
	default: // modePPMM
		return sub(mul(add(g, a), add(d, f)), mul(add(c, e), add(h, b))), sub(mul(add(h, b), add(h, b)), mul(add(d, f), add(d, f)))
	}
}

// IsBounded reports whether the denominator has constant sign over
// [-1, 1]^2, tested at three of the four +-1 corner pairs (the fourth
// follows from the other three by linearity).
func (m *L2) IsBounded() bool {
	boundedXP := absGreater(add(m.h, m.d), add(m.f, m.b))
	boundedXM := absGreater(sub(m.h, m.d), sub(m.f, m.b))
	boundedYP := absGreater(add(m.h, m.f), add(m.d, m.b))
	return boundedXP && boundedXM && boundedYP
}

// Bounds returns the four corner values (x=-1,y=-1), (x=1,y=-1), (x=-1,y=1),
// (x=1,y=1) as exact rationals. Requires IsBounded.
func (m *L2) Bounds() (atMMym1, atPMym1, atMPyp1, atPPyp1 *big.Rat) {
	if !m.IsBounded() {
		violate("bounds called on unbounded L2 %v", m)
	}
	mk := func(c Corner) *big.Rat {
		num, den := m.cornerValue(c)
		return new(big.Rat).SetFrac(num, den)
	}
	return mk(CornerMM), mk(CornerPM), mk(CornerMP), mk(CornerPP)
}

// IsContracting reports whether the image of [-1, 1]^2 lies in [-1, 1].
func (m *L2) IsContracting() bool {
	if !m.IsBounded() {
		return false
	}
	a, b, c, d := m.Bounds()
	return ratAbsLE1(a) && ratAbsLE1(b) && ratAbsLE1(c) && ratAbsLE1(d)
}

// axisHash picks which input axis to pull when the image isn't small enough
// yet: a deterministic hash of the eight coefficients, reduced to its top
// bit.
// Deliberately cheap and stateless; any fair scheduling policy
// (round-robin, longest-axis) would work equally well here.
func axisHash(a, b, c, d, e, f, g, h *big.Int) int {
	hsh := fnv.New64a()
	for _, v := range []*big.Int{a, b, c, d, e, f, g, h} {
		hsh.Write(v.Bytes())
		if v.Sign() < 0 {
			hsh.Write([]byte{1})
		} else {
			hsh.Write([]byte{0})
		}
	}
	return int(hsh.Sum64() >> 63)
}

// NextIndexToPull returns NoPull if the image is small enough to extract,
// else 0 or 1 identifying which input axis (x or y) to advance.
func (m *L2) NextIndexToPull() int {
	mode := m.Monotonicity()
	num, den := m.lengthNumDen(mode)
	if isSmallEnough(num, den) {
		return NoPull
	}
	return axisHash(m.a, m.b, m.c, m.d, m.e, m.f, m.g, m.h)
}

// Extract requires NextIndexToPull() == NoPull. It computes the output
// digit from the minimum corner's value and mutates the receiver to
// DigitL1(n)^-1 applied to the output.
func (m *L2) Extract() *big.Int {
	if m.NextIndexToPull() != NoPull {
		violate("extract called while next_index_to_pull != nil")
	}
	mode := m.Monotonicity()
	num, den := m.cornerValue(mode.Min)
	digit := digitFromLowerBound(num, den)
	m.invTimesDigit(digit)
	return digit
}
