package lft

import "fmt"

// This package distinguishes three error kinds. DomainError and
// NonRepresentable are ordinary returned errors; InvariantViolation is
// always raised via panic (see doc.go) and is only ever recovered at a
// program's top level, the way ivy's run.Run recovers value.Error.

// DomainError reports a caller-supplied value outside the domain the engine
// can represent, e.g. a fraction with |p/q| > 1 passed to FromFraction.
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string { return "reals: domain error: " + e.Msg }

// NonRepresentable reports a requested configuration the engine cannot
// satisfy exactly, e.g. a base conversion between two bases sharing no
// common integer power.
type NonRepresentable struct {
	Msg string
}

func (e *NonRepresentable) Error() string { return "reals: not representable: " + e.Msg }

// InvariantViolation reports a broken engine invariant: a non-contracting
// LFT handed to an operator, extract called while digits remain to pull,
// bounds requested of an unbounded LFT, a digit outside (-B, B). These are
// programmer errors, not user errors, and are fatal — see doc.go.
type InvariantViolation struct {
	Msg string
}

func (e *InvariantViolation) Error() string { return "reals: invariant violation: " + e.Msg }

// violate panics with an InvariantViolation. Every internal invariant check
// in this package goes through here so the panic value is always the same
// concrete type, letting a recover() distinguish it from other panics.
func violate(format string, args ...interface{}) {
	panic(&InvariantViolation{Msg: fmt.Sprintf(format, args...)})
}
