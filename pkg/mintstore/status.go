package mintstore

import (
	"fmt"

	"github.com/4b11b4/hexmint/pkg/codegen"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// Status is a read-only snapshot of the persisted generator state.
type Status struct {
	// HexDigits is the configured width of minted codes.
	HexDigits int

	// Domain is the total number of representable codes.
	Domain uint64

	// Sections is the number of sections the domain is split into.
	Sections uint64

	// SectionSize is the number of codes owned by each section.
	SectionSize uint64

	// Emitted is the number of codes minted in the current cycle.
	Emitted uint64

	// Remaining is the number of codes left in the current cycle.
	Remaining uint64
}

// Status reads the persisted state without modifying it.
func (s *Store) Status() (Status, error) {
	var res Status

	err := s.boltDB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(stateBucket)
		if b == nil {
			return fmt.Errorf("uninitialized state file")
		}

		data := b.Get(stateKey)
		if data == nil {
			return fmt.Errorf("missing state record, state file requires reset")
		}

		st, err := codegen.DecodeState(data)
		if err != nil {
			return fmt.Errorf("decode persisted state: %w", err)
		}

		prm := st.Params()

		res = Status{
			HexDigits:   s.hexDigits,
			Domain:      prm.Domain,
			Sections:    prm.Sections,
			SectionSize: prm.SectionSize(),
			Emitted:     st.Emitted(),
			Remaining:   st.Remaining(),
		}

		return nil
	})
	if err != nil {
		return Status{}, err
	}

	return res, nil
}

// Reset discards the persisted state and writes a fresh one with all
// cursors at zero. This is the explicit recovery path for a state the
// store refuses to load; nothing is ever repaired in place.
func (s *Store) Reset() error {
	st, err := codegen.NewState(s.params())
	if err != nil {
		return fmt.Errorf("create fresh state: %w", err)
	}

	err = s.boltDB.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(stateBucket)
		if err != nil {
			return fmt.Errorf("create state bucket: %w", err)
		}

		return b.Put(stateKey, st.Encode())
	})
	if err != nil {
		return err
	}

	s.log.Warn("state has been reset, a new cycle begins",
		zap.String("path", s.path),
	)

	return nil
}
