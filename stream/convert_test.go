package stream

import (
	"math/big"
	"testing"

	"github.com/worldsender/reals/lft"
)

func TestLargestSharedPower(t *testing.T) {
	tests := []struct {
		bf, bt, want int64
	}{
		{4, 16, 4},
		{2, 2, 2},
		{8, 4, 2},
		{3, 5, 1},
	}
	for _, tt := range tests {
		got := largestSharedPower(big.NewInt(tt.bf), big.NewInt(tt.bt))
		if got.Cmp(big.NewInt(tt.want)) != 0 {
			t.Errorf("largestSharedPower(%d, %d) = %v, want %d", tt.bf, tt.bt, got, tt.want)
		}
	}
}

func TestConvertBaseNonRepresentable(t *testing.T) {
	_, err := ConvertBase(ZeroSource(), big.NewInt(3), big.NewInt(5))
	if err == nil {
		t.Fatalf("expected NonRepresentable error")
	}
	if _, ok := err.(*lft.NonRepresentable); !ok {
		t.Errorf("expected *lft.NonRepresentable, got %T", err)
	}
}

func TestConvertBasePackThenSplitRoundTrips(t *testing.T) {
	// A constant unsigned stream of digit 5 in base 16, packed into base
	// 256 (= 16^2), should unpack back into the same base-16 digit stream.
	base16 := big.NewInt(16)
	base256 := big.NewInt(256)

	src := func() Iterator {
		five := big.NewInt(5)
		return funcIterator(func() (*big.Int, bool) { return five, true })
	}

	packed, err := ConvertBase(src, base16, base256)
	if err != nil {
		t.Fatal(err)
	}
	unpacked, err := ConvertBase(packed, base256, base16)
	if err != nil {
		t.Fatal(err)
	}

	it := unpacked()
	for i := 0; i < 8; i++ {
		d, ok := it.Next()
		if !ok {
			t.Fatalf("unpacked stream exhausted at digit %d", i)
		}
		if d.Cmp(big.NewInt(5)) != 0 {
			t.Errorf("digit %d = %v, want 5", i, d)
		}
	}
}

func TestConvertBaseSameBaseIsIdentity(t *testing.T) {
	src := OneSource()
	same, err := ConvertBase(src, big.NewInt(16), big.NewInt(16))
	if err != nil {
		t.Fatal(err)
	}
	it := same()
	d, ok := it.Next()
	if !ok || d == nil {
		t.Fatalf("expected digit from identity conversion")
	}
}
