package real

import (
	"testing"

	"github.com/worldsender/reals/config"
)

// digitList turns a fixed slice of hex digits into the `next func() int64`
// shape formatHexDigits expects, for hand-traced carry/borrow scenarios.
func digitList(values []int64) func() int64 {
	i := 0
	return func() int64 {
		v := values[i]
		i++
		return v
	}
}

// TestFormatHexDigitsBorrowAfterZeroRun exercises a mid-stream borrow: a
// short zero run ends in a negative digit, which borrows from the
// previously saved hex digit (3 -> 2, f for the skipped zero).
func TestFormatHexDigitsBorrowAfterZeroRun(t *testing.T) {
	got := formatHexDigits(digitList([]int64{3, 0, -2, 5}), 3)
	want := " .2fe"
	if got != want {
		t.Errorf("formatHexDigits = %q, want %q", got, want)
	}
}

// TestFormatHexDigitsTrailingBorrow exercises the post-loop rounding peek:
// precision runs out mid zero-run, and the one extra digit fetched beyond
// the budget is negative, so the held digit borrows (4 -> 3, trailing f).
func TestFormatHexDigitsTrailingBorrow(t *testing.T) {
	got := formatHexDigits(digitList([]int64{4, 0, 0, -1}), 2)
	want := " .3f"
	if got != want {
		t.Errorf("formatHexDigits = %q, want %q", got, want)
	}
}

// TestFormatHexDigitsTrailingCarry is the same shape but the rounding peek
// is non-negative, so the held digit renders as-is with trailing zeroes.
func TestFormatHexDigitsTrailingCarry(t *testing.T) {
	got := formatHexDigits(digitList([]int64{4, 0, 0, 2}), 2)
	want := " .40"
	if got != want {
		t.Errorf("formatHexDigits = %q, want %q", got, want)
	}
}

func TestFormatZeroLooksLikeAnInterval(t *testing.T) {
	cfg := &config.Config{}
	cfg.SetPrecision(4)
	got := Format(Zero, cfg)
	if got[0] != '[' || got[len(got)-1] != ']' {
		t.Errorf("Format(Zero) = %q, want a bracketed interval", got)
	}
}

func TestFormatHexOnRealConstant(t *testing.T) {
	r, err := FromFraction(3, 4)
	if err != nil {
		t.Fatal(err)
	}
	s, err := FormatHex(r, 8)
	if err != nil {
		t.Fatalf("FormatHex: %v", err)
	}
	if len(s) == 0 || (s[0] != ' ' && s[0] != '-') {
		t.Errorf("FormatHex(3/4) = %q, want a leading sign column", s)
	}
}
