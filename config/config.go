// Package config holds engine-wide settings for the LFT real-number engine:
// the digit exponent and formatting/debug defaults. Shaped after ivy's
// config package: a zero-value-safe struct with nil-safe getters and
// explicit Set* methods, not a package-level mutable singleton.
package config

import "math/big"

// Exponent is E in B = 2^E. Kept compile-time: a runtime E would require
// threading B through every constructor instead of computing it once here.
const Exponent = 64

var (
	// power2 is B = 2^Exponent, computed once and shared read-only.
	power2 = new(big.Int).Lsh(big.NewInt(1), Exponent)
	// power2Minus1 is B - 1, the digit value of the constant stream "one".
	power2Minus1 = new(big.Int).Sub(power2, big.NewInt(1))
)

// Power2 returns B = 2^Exponent as a shared, read-only big.Int. Callers must
// not mutate the result.
func Power2() *big.Int { return power2 }

// Power2Minus1 returns B - 1, the digit representing the constant real 1.
func Power2Minus1() *big.Int { return power2Minus1 }

// DefaultPrecision is how many digits Format consumes when a Config has not
// set an explicit precision.
const DefaultPrecision = 8

// A Config holds presentation and diagnostic settings. The zero value is a
// usable, silent default (decimal formatting, no debug output), matching
// ivy's Config.
type Config struct {
	precision  int // digits consumed by Format, in engine-native base-B digits
	outputBase int // 10 or 16; stored only, real.Format always renders decimal
	debug      map[string]bool
}

func (c *Config) Precision() int {
	if c == nil || c.precision == 0 {
		return DefaultPrecision
	}
	return c.precision
}

func (c *Config) SetPrecision(n int) {
	c.precision = n
}

func (c *Config) OutputBase() int {
	if c == nil || c.outputBase == 0 {
		return 10
	}
	return c.outputBase
}

func (c *Config) SetOutputBase(base int) {
	c.outputBase = base
}

func (c *Config) Debug(tag string) bool {
	if c == nil {
		return false
	}
	return c.debug[tag]
}

func (c *Config) SetDebug(tag string, state bool) {
	if c.debug == nil {
		c.debug = make(map[string]bool)
	}
	c.debug[tag] = state
}
