// Package stream implements coroutine-shaped digit producers: a Source is
// a restartable, nullary-callable factory for an Iterator over signed
// digits, and TransformUnary/TransformBinary turn an lft.L1/lft.L2 plus one
// or two input Sources into a new Source by interleaving extraction and
// absorption.
//
// Go has no native generator syntax, so a stream is represented as a
// closure returning a pull-model Iterator rather than a push-model one.
// This package never logs.
package stream
