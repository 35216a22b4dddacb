package lft

import (
	"fmt"
	"math/big"

	"github.com/worldsender/reals/config"
)

// Mode classifies a unary LFT by which endpoint of [-1, 1] maps to the
// image minimum.
type Mode int

const (
	Increasing Mode = iota
	Decreasing
)

// NoPull is the sentinel NextIndexToPull returns when an LFT has contracted
// enough to emit a digit instead of consuming more input.
const NoPull = -1

// L1 is a one-dimensional linear fractional transform
//
//	L(x) = (a*x + c) / (b*x + d)
//
// stored as the matrix [[a, c], [b, d]]. All operations mutate the
// receiver in place; callers that need to keep an unmodified copy should
// Clone first.
type L1 struct {
	a, b, c, d *big.Int
}

// NewL1 builds an L1 from int64 coefficients; chiefly useful for literal
// operator constants (see real/catalog.go).
func NewL1(a, b, c, d int64) *L1 {
	return &L1{big.NewInt(a), big.NewInt(b), big.NewInt(c), big.NewInt(d)}
}

// newL1Big builds an L1 taking ownership of the given big.Ints (no copy).
func newL1Big(a, b, c, d *big.Int) *L1 {
	return &L1{a, b, c, d}
}

// IdentityL1 returns the identity transform L(x) = x.
func IdentityL1() *L1 {
	return NewL1(1, 0, 0, 1)
}

// DigitL1 returns the LFT representing a single absorbed digit: (1, 0, n, B).
// Panics with InvariantViolation if n is outside (-B, B).
func DigitL1(n *big.Int) *L1 {
	requireDigitRange(n)
	return newL1Big(big.NewInt(1), big.NewInt(0), new(big.Int).Set(n), new(big.Int).Set(config.Power2()))
}

// FromFraction returns the LFT x -> (p/q)*x, which maps the constant stream
// "one" (x = 1) to p/q. Requires |p/q| <= 1 and q != 0; returns DomainError
// otherwise.
func FromFraction(p, q *big.Int) (*L1, error) {
	if q.Sign() == 0 {
		return nil, &DomainError{Msg: "fraction has zero denominator"}
	}
	num := new(big.Rat).SetFrac(p, q)
	one := big.NewRat(1, 1)
	if num.Cmp(one) > 0 || num.Cmp(new(big.Rat).Neg(one)) < 0 {
		return nil, &DomainError{Msg: fmt.Sprintf("fraction %v/%v outside [-1, 1]", p, q)}
	}
	pp, qq := new(big.Int).Set(p), new(big.Int).Set(q)
	if qq.Sign() < 0 {
		pp.Neg(pp)
		qq.Neg(qq)
	}
	return newL1Big(pp, big.NewInt(0), big.NewInt(0), qq), nil
}

func requireDigitRange(n *big.Int) {
	b := config.Power2()
	negB := new(big.Int).Neg(b)
	if n.Cmp(negB) <= 0 || n.Cmp(b) >= 0 {
		violate("digit %v outside (-B, B)", n)
	}
}

// Clone returns an independent copy, needed whenever an operator constant is
// replayed against a fresh stream: each replay must start from the same
// matrix, not one left mutated by a previous run.
func (m *L1) Clone() *L1 {
	return newL1Big(new(big.Int).Set(m.a), new(big.Int).Set(m.b), new(big.Int).Set(m.c), new(big.Int).Set(m.d))
}

func (m *L1) String() string {
	return fmt.Sprintf("[%v %v; %v %v]", m.a, m.c, m.b, m.d)
}

// Compose replaces the receiver with self ∘ other (matrix product self*other).
func (m *L1) Compose(other *L1) {
	a, b, c, d := m.a, m.b, m.c, m.d
	u, v, w, x := other.a, other.b, other.c, other.d
	na := new(big.Int).Add(mul(a, u), mul(c, v))
	nb := new(big.Int).Add(mul(b, u), mul(d, v))
	nc := new(big.Int).Add(mul(a, w), mul(c, x))
	nd := new(big.Int).Add(mul(b, w), mul(d, x))
	m.a, m.b, m.c, m.d = na, nb, nc, nd
}

// AbsorbDigit composes the receiver with DigitL1(n): self = self ∘ digit(n).
// Computed directly on c, d rather than by building and composing an
// intermediate L1, since a and b are unchanged by this particular product.
func (m *L1) AbsorbDigit(n *big.Int) {
	requireDigitRange(n)
	e := uint(config.Exponent)
	a, b, c, d := m.a, m.b, m.c, m.d
	nc := new(big.Int).Add(mul(a, n), new(big.Int).Lsh(c, e))
	nd := new(big.Int).Add(mul(b, n), new(big.Int).Lsh(d, e))
	m.c, m.d = nc, nd
}

// invTimesDigit replaces self with DigitL1(n)^-1 ∘ self, the mutation
// performed by Extract once a digit has been chosen. b and d are unchanged
// by this product, so only a and c are recomputed.
func (m *L1) invTimesDigit(n *big.Int) {
	e := uint(config.Exponent)
	u, v, w, x := m.a, m.b, m.c, m.d
	na := new(big.Int).Sub(new(big.Int).Lsh(u, e), mul(n, v))
	nc := new(big.Int).Sub(new(big.Int).Lsh(w, e), mul(n, x))
	m.a, m.c = na, nc
	// b, d (v, x) are unchanged.
}

// Normalize divides all four entries by their GCD, preserving the
// represented function. Idempotent; safe to call when already normalized.
func (m *L1) Normalize() {
	g := gcd4(m.a, m.b, m.c, m.d)
	if g.Cmp(one) <= 0 {
		return
	}
	m.a = new(big.Int).Quo(m.a, g)
	m.b = new(big.Int).Quo(m.b, g)
	m.c = new(big.Int).Quo(m.c, g)
	m.d = new(big.Int).Quo(m.d, g)
}

// Monotonicity returns Increasing iff b*c < a*d: the sign of the
// determinant of the denominator/numerator cross terms determines whether
// L is increasing or decreasing over its domain.
func (m *L1) Monotonicity() Mode {
	if mul(m.b, m.c).Cmp(mul(m.a, m.d)) < 0 {
		return Increasing
	}
	return Decreasing
}

// IsBounded reports whether the denominator has constant sign over [-1, 1]:
// |d| > |b|.
func (m *L1) IsBounded() bool {
	return absGreater(m.d, m.b)
}

// Bounds returns (L(-1), L(1)) as exact rationals. Requires IsBounded.
func (m *L1) Bounds() (lo, hi *big.Rat) {
	if !m.IsBounded() {
		violate("bounds called on unbounded L1 %v", m)
	}
	lo = new(big.Rat).SetFrac(sub(m.c, m.a), sub(m.d, m.b))
	hi = new(big.Rat).SetFrac(add(m.c, m.a), add(m.d, m.b))
	return lo, hi
}

// IsContracting reports whether the image of [-1, 1] under L lies in
// [-1, 1]: bounded, and both endpoints within [-1, 1].
func (m *L1) IsContracting() bool {
	if !m.IsBounded() {
		return false
	}
	lo, hi := m.Bounds()
	return ratAbsLE1(lo) && ratAbsLE1(hi)
}

// determinant returns a*d - b*c.
func (m *L1) determinant() *big.Int {
	return sub(mul(m.a, m.d), mul(m.b, m.c))
}

// signature returns d^2 - b^2, the common denominator of L(1) - L(-1).
func (m *L1) signature() *big.Int {
	return sub(mul(m.d, m.d), mul(m.b, m.b))
}

// NextIndexToPull returns NoPull if the image interval is short enough
// (length <= 2/B) to commit an output digit, else 0 (the only input axis).
func (m *L1) NextIndexToPull() int {
	var num *big.Int
	det := m.determinant()
	if m.Monotonicity() == Increasing {
		num = det
	} else {
		num = new(big.Int).Neg(det)
	}
	if isSmallEnough(num, m.signature()) {
		return NoPull
	}
	return 0
}

// Extract requires NextIndexToPull() == NoPull. It computes the output
// digit from the image's lower bound and mutates the receiver to
// DigitL1(n)^-1 ∘ self.
func (m *L1) Extract() *big.Int {
	if m.NextIndexToPull() != NoPull {
		violate("extract called while next_index_to_pull != nil")
	}
	var lowerNum, lowerDen *big.Int
	if m.Monotonicity() == Increasing {
		lowerNum, lowerDen = sub(m.c, m.a), sub(m.d, m.b)
	} else {
		lowerNum, lowerDen = add(m.c, m.a), add(m.d, m.b)
	}
	digit := digitFromLowerBound(lowerNum, lowerDen)
	m.invTimesDigit(digit)
	return digit
}

// --- shared arithmetic helpers (also used by binary.go) ---

var one = big.NewInt(1)

func mul(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }
func add(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }
func sub(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }

func absGreater(x, y *big.Int) bool {
	return new(big.Int).Abs(x).Cmp(new(big.Int).Abs(y)) > 0
}

func gcd4(a, b, c, d *big.Int) *big.Int {
	g := new(big.Int).GCD(nil, nil, absVal(a), absVal(b))
	g = new(big.Int).GCD(nil, nil, g, absVal(c))
	g = new(big.Int).GCD(nil, nil, g, absVal(d))
	if g.Sign() == 0 {
		return big.NewInt(1)
	}
	return g
}

func absVal(x *big.Int) *big.Int {
	if x.Sign() == 0 {
		return big.NewInt(0)
	}
	return new(big.Int).Abs(x)
}

func ratAbsLE1(r *big.Rat) bool {
	return new(big.Rat).Abs(r).Cmp(big.NewRat(1, 1)) <= 0
}

// isSmallEnough reports whether the image length 2*num/den is <= 2/B, where
// num/den is the half-length callers compute; tested without division as
// num <= den >> E.
func isSmallEnough(num, den *big.Int) bool {
	shifted := new(big.Int).Rsh(den, uint(config.Exponent))
	return num.Cmp(shifted) <= 0
}

// digitFromLowerBound returns the largest n with (n-1)/B <= a/b, clamped
// down by one if that would equal B. Requires b != 0; a negative b is
// handled by negating both a and b first.
func digitFromLowerBound(a, b *big.Int) *big.Int {
	if b.Sign() < 0 {
		a, b = new(big.Int).Neg(a), new(big.Int).Neg(b)
	}
	shifted := new(big.Int).Lsh(a, uint(config.Exponent))
	q := new(big.Int).Div(shifted, b) // floor division, since b > 0 here
	n := new(big.Int).Add(q, one)
	if n.Cmp(config.Power2()) == 0 {
		n.Sub(n, one)
	}
	return n
}
