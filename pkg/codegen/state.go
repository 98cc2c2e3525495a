package codegen

import "fmt"

// Rand is a source of selection randomness for State.Next. The sequence only
// has to look random to an outside observer, there is no unpredictability
// requirement, so any 64-bit generator fits.
type Rand interface {
	Uint64() uint64
}

// State is the traversal state of a full-period walk over the domain. Each
// section keeps a cursor counting the values it has emitted in the current
// cycle; a section that has emitted its whole band is excluded from
// selection until every section has finished and a new cycle begins.
//
// State is not safe for concurrent use.
type State struct {
	prm  Params
	size uint64

	cursors   []uint64
	done      []bool
	doneCount uint64
}

// NewState creates the state of a fresh cycle: all cursors at zero, every
// section eligible.
func NewState(prm Params) (*State, error) {
	if err := prm.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	return &State{
		prm:     prm,
		size:    prm.SectionSize(),
		cursors: make([]uint64, prm.Sections),
		done:    make([]bool, prm.Sections),
	}, nil
}

// Params returns the fixed parameters the state was created with.
func (s *State) Params() Params {
	return s.prm
}

// CompatibleWith checks that the state was created with exactly the given
// parameters. Returns ErrConfigMismatch otherwise.
func (s *State) CompatibleWith(prm Params) error {
	if s.prm != prm {
		return fmt.Errorf("%w: state has domain %d in %d sections, configured %d in %d",
			ErrConfigMismatch, s.prm.Domain, s.prm.Sections, prm.Domain, prm.Sections)
	}

	return nil
}

// Emitted returns the number of values emitted in the current cycle.
func (s *State) Emitted() uint64 {
	n := s.doneCount * s.size
	for i := range s.cursors {
		if !s.done[i] {
			n += s.cursors[i]
		}
	}

	return n
}

// Remaining returns the number of values left in the current cycle.
func (s *State) Remaining() uint64 {
	return s.prm.Domain - s.Emitted()
}

// Next picks one unemitted value of the current cycle and advances the
// state: a section still holding unemitted values is selected with
// probability proportional to how many it has left, the section emits the
// next value of its staggered walk through its own band, and its cursor
// moves forward. When the draw completes the cycle, all cursors reset and
// the next call starts an identical new cycle.
//
// Returns ErrExhaustedSelection if no section is eligible before the cycle
// is complete, which cannot happen unless the state is corrupted.
func (s *State) Next(r Rand) (uint64, error) {
	total := s.Remaining()
	if total == 0 {
		return 0, ErrExhaustedSelection
	}

	ticket := r.Uint64() % total

	for i := range s.cursors {
		if s.done[i] {
			continue
		}

		budget := s.size - s.cursors[i]
		if ticket >= budget {
			ticket -= budget
			continue
		}

		sec := uint64(i)
		val := sec*s.size + (s.prm.StartOffset(sec)+s.cursors[i])%s.size

		s.cursors[i]++
		if s.cursors[i] == s.size {
			// section finished its band, wrap the cursor and park it
			s.cursors[i] = 0
			s.done[i] = true
			s.doneCount++
		}

		if s.doneCount == s.prm.Sections {
			// cycle complete, every section starts over
			for j := range s.done {
				s.done[j] = false
			}
			s.doneCount = 0
		}

		return val, nil
	}

	return 0, ErrExhaustedSelection
}
