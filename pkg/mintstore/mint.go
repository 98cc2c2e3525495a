package mintstore

import (
	"fmt"

	"github.com/4b11b4/hexmint/pkg/codegen"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// Mint emits one code: the persisted state is loaded, advanced by a single
// draw and persisted back within one write transaction. If any step fails,
// the transaction rolls back and the persisted state is left untouched.
//
// The result is the drawn value rendered as zero-padded lowercase hex of
// the configured width.
func (s *Store) Mint() (string, error) {
	codes, err := s.MintBatch(1)
	if err != nil {
		return "", err
	}

	return codes[0], nil
}

// MintBatch emits n codes in a single load-advance-persist transaction: the
// state is decoded once, advanced n times and written back once. The batch
// is all-or-nothing.
func (s *Store) MintBatch(n int) ([]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("non-positive batch size %d", n)
	}

	codes := make([]string, 0, n)

	err := s.boltDB.Update(func(tx *bbolt.Tx) error {
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

		if err := st.CompatibleWith(s.params()); err != nil {
			return err
		}

		for i := 0; i < n; i++ {
			v, err := st.Next(s.rnd)
			if err != nil {
				return fmt.Errorf("advance state: %w", err)
			}

			codes = append(codes, fmt.Sprintf("%0*x", s.hexDigits, v))
		}

		return b.Put(stateKey, st.Encode())
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("minted codes",
		zap.Int("count", n),
	)

	return codes, nil
}
