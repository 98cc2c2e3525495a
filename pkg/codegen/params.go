package codegen

import (
	"errors"
	"fmt"
)

// Params groups the fixed parameters of a code generator: the size of the
// numeric domain the codes are drawn from and the number of sections the
// domain is split into. Both are set once, at state creation, and must not
// change for the lifetime of a persisted state.
type Params struct {
	// Domain is the number of representable codes, so every emitted value
	// fits in [0, Domain).
	Domain uint64

	// Sections is the number of equal slices the domain is split into. It
	// must divide Domain evenly.
	Sections uint64
}

// ErrUnevenSplit is returned by Params.Validate when the configured number
// of sections does not divide the domain evenly.
var ErrUnevenSplit = errors.New("sections do not split the domain evenly")

// Validate checks that the parameters describe a usable domain split.
func (p Params) Validate() error {
	switch {
	case p.Domain == 0:
		return errors.New("zero domain")
	case p.Sections == 0:
		return errors.New("zero section count")
	case p.Sections > p.Domain:
		return fmt.Errorf("more sections (%d) than domain values (%d)", p.Sections, p.Domain)
	case p.Domain%p.Sections != 0:
		return fmt.Errorf("%w: %d values into %d sections", ErrUnevenSplit, p.Domain, p.Sections)
	}

	return nil
}

// SectionSize returns the number of values owned by each section.
//
// Params must be valid.
func (p Params) SectionSize() uint64 {
	return p.Domain / p.Sections
}

// Band returns the bounds of the numeric band owned by the given section:
// the lowest value and the value one past the highest. Bands of consecutive
// sections are contiguous, never overlap, and together cover the domain.
//
// Params must be valid, i must be less than Sections.
func (p Params) Band(i uint64) (lo, hi uint64) {
	size := p.SectionSize()
	return i * size, (i + 1) * size
}

// StartOffset returns the first value the given section emits in a cycle.
// Sections are staggered: section i starts i positions into its own band
// (wrapped to the band size), so simultaneous fresh cursors still produce
// values that differ in the low digits.
//
// Params must be valid, i must be less than Sections.
func (p Params) StartOffset(i uint64) uint64 {
	size := p.SectionSize()
	return i*size + i%size
}
