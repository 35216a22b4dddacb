package real

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"

	"github.com/worldsender/reals/config"
	"github.com/worldsender/reals/lft"
	"github.com/worldsender/reals/stream"
)

// Bounds consumes cfg.Precision() digits of r into a fresh identity L1,
// normalizing after each absorb, and returns the resulting image's bounds
// as exact rationals. Round-trip law: FromFraction(p, q).Bounds(cfg)
// contains p/q for any cfg.Precision().
func Bounds(r Real, cfg *config.Config) (lo, hi *big.Rat) {
	m := lft.IdentityL1()
	it := r.src()
	for i := 0; i < cfg.Precision(); i++ {
		d, ok := it.Next()
		if !ok {
			break
		}
		m.AbsorbDigit(d)
		m.Normalize()
	}
	return m.Bounds()
}

// Format renders Bounds as a decimal interval "[lo, hi]". There is no
// integer part to render: this engine's reals never leave [-1, 1].
func Format(r Real, cfg *config.Config) string {
	lo, hi := Bounds(r, cfg)
	digits := decimalDigits(cfg)
	return fmt.Sprintf("[%s, %s]", lo.FloatString(digits), hi.FloatString(digits))
}

// decimalDigits picks enough decimal places to display cfg.Precision()
// engine digits (each worth config.Exponent bits) without implying
// precision the interval doesn't have.
func decimalDigits(cfg *config.Config) int {
	return cfg.Precision()*config.Exponent/3 + 1
}

var hexAlphabet = "0123456789abcdef"

// FormatHex renders r as a signed hexadecimal fraction string such as
// " .4a0f" (a sign column, '.', then hex digits), consuming up to precision hex digits of r converted to base
// 16 via stream.ConvertBase. Handles carry and borrow across runs of zero
// digits: a digit is held back one step ("saved") until the next nonzero
// digit reveals whether the run of zeroes in between should render as
// zeroes (no sign change) or as a trailing run of 'f' with the held digit
// decremented (a borrow, when the next significant digit is negative
// relative to the current sign).
func FormatHex(r Real, precision int) (string, error) {
	hexSrc, err := stream.ConvertBase(r.Source(), config.Power2(), big.NewInt(16))
	if err != nil {
		return "", errors.Wrap(err, "real.FormatHex")
	}
	it := hexSrc()
	next := func() int64 {
		d, _ := it.Next() // engine-internal streams never exhaust
		return d.Int64()
	}
	return formatHexDigits(next, precision), nil
}

// formatHexDigits is FormatHex's carry/borrow logic, isolated from base
// conversion so it can be exercised directly against hand-picked hex digit
// sequences (see format_test.go).
func formatHexDigits(next func() int64, precision int) string {
	var out strings.Builder

	zeroes := 0
	digit := next()
	for digit == 0 && precision > 0 {
		zeroes++
		digit = next()
		precision--
	}
	if digit < 0 {
		out.WriteByte('-')
	} else {
		out.WriteByte(' ')
	}
	out.WriteByte('.')
	out.WriteString(strings.Repeat("0", zeroes))

	sign := int64(1)
	if digit < 0 {
		sign = -1
	}
	saved := digit
	if saved < 0 {
		saved = -saved
	}

	zeroes = 0
	for precision > 0 {
		zeroes = 0
		precision--
		digit = next()
		for digit == 0 && precision > 0 {
			zeroes++
			digit = next()
			precision--
		}
		digit *= sign
		switch {
		case digit < 0:
			out.WriteByte(hexAlphabet[saved-1])
			out.WriteString(strings.Repeat("f", zeroes))
			saved = 16 + digit
		case digit > 0:
			out.WriteByte(hexAlphabet[saved])
			out.WriteString(strings.Repeat("0", zeroes))
			saved = digit
		}
	}
	if zeroes > 0 {
		rounding := next() * sign
		if rounding < 0 {
			out.WriteByte(hexAlphabet[saved-1])
			out.WriteString(strings.Repeat("f", zeroes))
		} else {
			out.WriteByte(hexAlphabet[saved])
			out.WriteString(strings.Repeat("0", zeroes))
		}
	}
	return out.String()
}
