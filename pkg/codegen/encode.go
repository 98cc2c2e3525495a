package codegen

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Binary state blob layout, all integers big-endian:
//
//	magic     4 bytes "HXMS"
//	version   1 byte
//	domain    uint64
//	sections  uint64
//	cursors   sections * uint64
//	finished  ceil(sections/8) bytes, bit i set when section i has emitted
//	          its whole band in the current cycle
var stateMagic = []byte("HXMS")

const stateVersion = 1

const stateHeaderLen = 4 + 1 + 8 + 8

// Encode serializes the state into a self-describing binary blob. The blob
// round-trips through DecodeState for every reachable state.
func (s *State) Encode() []byte {
	m := s.prm.Sections
	buf := make([]byte, stateHeaderLen+8*m+(m+7)/8)

	copy(buf, stateMagic)
	buf[4] = stateVersion
	binary.BigEndian.PutUint64(buf[5:], s.prm.Domain)
	binary.BigEndian.PutUint64(buf[13:], m)

	off := stateHeaderLen
	for i := range s.cursors {
		binary.BigEndian.PutUint64(buf[off:], s.cursors[i])
		off += 8
	}

	for i := range s.done {
		if s.done[i] {
			buf[off+i/8] |= 1 << (i % 8)
		}
	}

	return buf
}

// DecodeState restores a state from a blob produced by Encode. Any
// structural defect, from bad framing to cursor values no sequence of draws
// could have produced, results in ErrCorruptState. The blob is never
// repaired.
func DecodeState(data []byte) (*State, error) {
	if len(data) < stateHeaderLen {
		return nil, fmt.Errorf("%w: truncated header (%d bytes)", ErrCorruptState, len(data))
	}

	if !bytes.Equal(data[:4], stateMagic) {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorruptState, data[:4])
	}

	if data[4] != stateVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptState, data[4])
	}

	prm := Params{
		Domain:   binary.BigEndian.Uint64(data[5:]),
		Sections: binary.BigEndian.Uint64(data[13:]),
	}

	if err := prm.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	m := prm.Sections
	if exp := uint64(stateHeaderLen) + 8*m + (m+7)/8; uint64(len(data)) != exp {
		return nil, fmt.Errorf("%w: %d bytes for %d sections, want %d", ErrCorruptState, len(data), m, exp)
	}

	s, err := NewState(prm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	off := stateHeaderLen
	for i := range s.cursors {
		s.cursors[i] = binary.BigEndian.Uint64(data[off:])
		off += 8
	}

	for i := range s.done {
		if data[off+i/8]&(1<<(i%8)) != 0 {
			s.done[i] = true
			s.doneCount++
		}
	}

	for i := range s.cursors {
		switch {
		case s.cursors[i] >= s.size:
			return nil, fmt.Errorf("%w: cursor %d of section %d outside [0, %d)",
				ErrCorruptState, s.cursors[i], i, s.size)
		case s.done[i] && s.cursors[i] != 0:
			return nil, fmt.Errorf("%w: finished section %d with non-zero cursor %d",
				ErrCorruptState, i, s.cursors[i])
		}
	}

	// a completed cycle resets before it is ever persisted
	if s.doneCount == m {
		return nil, fmt.Errorf("%w: all %d sections marked finished", ErrCorruptState, m)
	}

	return s, nil
}
