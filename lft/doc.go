// Package lft implements the matrix algebra at the core of the exact-real
// engine: one-dimensional linear fractional transformations (L1, 2x2
// integer matrices) and two-dimensional bilinear ones (L2, 2x4 integer
// matrices), along with the decision procedures that drive lazy digit
// consumption and emission: monotonicity classification, the
// next-index-to-pull test, extract, and the contraction/boundedness checks.
//
// This package never logs and never wraps its errors — it is a silent
// library, the way ivy/value is. InvariantViolation panics here are meant
// to be recovered only at a program's top level (see cmd/reals); every
// other caller is expected to only ever construct contracting LFTs and feed
// them valid digits, in which case no panic is reachable.
package lft
