// Package initarray provides fixed-size int64 arrays whose Init operation
// logically sets every cell in O(1) time and O(1) space, while Read and
// Write stay O(1) worst-case.
//
// Two in-place encodings are available: Variant2 (block size 2) and
// Variant4 (block size 4, with a terminal fast path once every block has
// been written). Both keep all bookkeeping inside the single N-word
// backing buffer; there is no initialization bitmap and no per-cell
// timestamp. Reference is a plain slice with an O(N) Init, useful as a
// baseline and as a differential-testing oracle.
package initarray

import (
	"fmt"

	"github.com/scigolib/initarray/internal/core"
)

// Array is the public contract: see the core package for the method
// semantics. Implementations are not safe for concurrent use.
type Array = core.Array

// Counters is the snapshot of an array's operation counters.
type Counters = core.Counters

// Error values returned by constructors and accessors.
var (
	ErrBadShape   = core.ErrBadShape
	ErrOutOfRange = core.ErrOutOfRange
)

// Implementation names accepted by New.
const (
	KindVariant2  = "variant2"
	KindVariant4  = "variant4"
	KindReference = "reference"
)

// NewVariant2 constructs the block-size-2 encoding. n must be a positive
// even number.
func NewVariant2(n int) (Array, error) {
	return core.NewVariant2(n)
}

// NewVariant4 constructs the block-size-4 encoding. n must be a positive
// multiple of 4.
func NewVariant4(n int) (Array, error) {
	return core.NewVariant4(n)
}

// NewReference constructs the plain-slice baseline. n must be positive.
func NewReference(n int) (Array, error) {
	return core.NewReference(n)
}

// New constructs an implementation by name.
func New(kind string, n int) (Array, error) {
	switch kind {
	case KindVariant2:
		return NewVariant2(n)
	case KindVariant4:
		return NewVariant4(n)
	case KindReference:
		return NewReference(n)
	default:
		return nil, fmt.Errorf("unknown implementation %q", kind)
	}
}

// Kinds lists the implementation names New accepts.
func Kinds() []string {
	return []string{KindReference, KindVariant2, KindVariant4}
}
