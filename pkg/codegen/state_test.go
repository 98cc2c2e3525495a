package codegen

import (
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func testRand(seed int64) Rand {
	return mrand.New(mrand.NewSource(seed))
}

// fixedRand makes Next deterministic: with total remaining budget above v,
// the selection ticket equals v exactly.
type fixedRand uint64

func (r fixedRand) Uint64() uint64 { return uint64(r) }

// drawFrom forces the next draw to come from the given section.
func drawFrom(t *testing.T, s *State, section uint64) uint64 {
	var ticket uint64
	for i := uint64(0); i < section; i++ {
		if !s.done[i] {
			ticket += s.size - s.cursors[i]
		}
	}

	require.False(t, s.done[section])

	v, err := s.Next(fixedRand(ticket))
	require.NoError(t, err)

	return v
}

func TestNextFullCoverage(t *testing.T) {
	prm := Params{Domain: 256, Sections: 16}

	s, err := NewState(prm)
	require.NoError(t, err)

	r := testRand(1)
	seen := make(map[uint64]struct{}, prm.Domain)

	for i := uint64(0); i < prm.Domain; i++ {
		require.Equal(t, i, s.Emitted())

		v, err := s.Next(r)
		require.NoError(t, err)
		require.Less(t, v, prm.Domain)

		_, dup := seen[v]
		require.False(t, dup, "duplicate value %d at draw %d", v, i)
		seen[v] = struct{}{}
	}

	require.Len(t, seen, int(prm.Domain))

	// the completed cycle reset the state
	require.Zero(t, s.Emitted())
	require.Equal(t, prm.Domain, s.Remaining())
}

func TestNextPeriodicity(t *testing.T) {
	prm := Params{Domain: 256, Sections: 16}

	s, err := NewState(prm)
	require.NoError(t, err)

	cycle := func(seed int64) []uint64 {
		r := testRand(seed)
		res := make([]uint64, prm.Domain)
		for i := range res {
			res[i], err = s.Next(r)
			require.NoError(t, err)
		}
		return res
	}

	first := cycle(42)
	second := cycle(42)

	require.Equal(t, first, second)
}

func TestNextSectionWalk(t *testing.T) {
	// domain of 100 split into 10 sections of 10 values
	s, err := NewState(Params{Domain: 100, Sections: 10})
	require.NoError(t, err)

	require.EqualValues(t, 0, drawFrom(t, s, 0))
	require.EqualValues(t, 11, drawFrom(t, s, 1))
	require.EqualValues(t, 22, drawFrom(t, s, 2))

	// second draw of section 1 continues its walk
	require.EqualValues(t, 12, drawFrom(t, s, 1))

	// the walk wraps to the band's minimum on its last draw
	for _, exp := range []uint64{13, 14, 15, 16, 17, 18, 19} {
		require.Equal(t, exp, drawFrom(t, s, 1))
	}
	require.EqualValues(t, 10, drawFrom(t, s, 1))

	// section 1 has spent its budget and is excluded until the cycle ends
	require.True(t, s.done[1])
	require.EqualValues(t, 12, s.Emitted())
}

func TestNextExhaustedSelection(t *testing.T) {
	s, err := NewState(Params{Domain: 64, Sections: 4})
	require.NoError(t, err)

	// no sequence of draws reaches this, only corruption does
	for i := range s.done {
		s.done[i] = true
	}
	s.doneCount = 4

	_, err = s.Next(testRand(1))
	require.ErrorIs(t, err, ErrExhaustedSelection)
}

func TestNextApparentRandomness(t *testing.T) {
	prm := Params{Domain: 256, Sections: 16}

	cycle := func(seed int64) []uint64 {
		s, err := NewState(prm)
		require.NoError(t, err)

		r := testRand(seed)
		res := make([]uint64, prm.Domain)
		for i := range res {
			res[i], err = s.Next(r)
			require.NoError(t, err)
		}
		return res
	}

	a := cycle(1)
	b := cycle(2)

	// same value set per cycle, different emission order per seed
	require.ElementsMatch(t, a, b)
	require.NotEqual(t, a, b)
}

func TestCompatibleWith(t *testing.T) {
	prm := Params{Domain: 256, Sections: 16}

	s, err := NewState(prm)
	require.NoError(t, err)

	require.NoError(t, s.CompatibleWith(prm))
	require.ErrorIs(t, s.CompatibleWith(Params{Domain: 4096, Sections: 16}), ErrConfigMismatch)
	require.ErrorIs(t, s.CompatibleWith(Params{Domain: 256, Sections: 8}), ErrConfigMismatch)
}
