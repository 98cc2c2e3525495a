package mintstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/4b11b4/hexmint/pkg/codegen"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var stateBucket = []byte("state")

var stateKey = []byte("permutation")

// Open opens the state file at the configured path with configured
// permissions, locking it for exclusive use. If the file does not exist
// then it will be created automatically.
func (s *Store) Open() error {
	if s.path == "" {
		return fmt.Errorf("missing state file path")
	}

	if s.hexDigits < 1 || s.hexDigits > 15 {
		return fmt.Errorf("unsupported code width %d, want 1..15 hex digits", s.hexDigits)
	}

	if err := s.params().Validate(); err != nil {
		return fmt.Errorf("invalid generator configuration: %w", err)
	}

	s.log.Debug("creating directory for state file",
		zap.String("path", s.path),
	)

	err := os.MkdirAll(filepath.Dir(s.path), 0o700)
	if err == nil {
		s.log.Debug("opening state file",
			zap.String("path", s.path),
			zap.Stringer("permissions", s.perm),
		)

		s.boltDB, err = bbolt.Open(s.path, s.perm, s.boltOptions)
	}

	return err
}

// Init initializes the persisted generator state. A missing state is
// created fresh with all cursors at zero; an existing one is decoded,
// structurally validated and checked against the configured code width and
// section count. Init never modifies an existing valid state.
func (s *Store) Init() error {
	prm := s.params()

	s.log.Debug("initializing...",
		zap.Int("hex digits", s.hexDigits),
		zap.Uint64("domain", prm.Domain),
		zap.Uint64("sections", prm.Sections),
	)

	return s.boltDB.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(stateBucket)
		if err != nil {
			return fmt.Errorf("create state bucket: %w", err)
		}

		data := b.Get(stateKey)
		if data == nil {
			st, err := codegen.NewState(prm)
			if err != nil {
				return fmt.Errorf("create fresh state: %w", err)
			}

			s.log.Info("no previous state found, starting a fresh cycle",
				zap.Uint64("domain", prm.Domain),
			)

			return b.Put(stateKey, st.Encode())
		}

		st, err := codegen.DecodeState(data)
		if err != nil {
			return fmt.Errorf("decode persisted state: %w", err)
		}

		if err := st.CompatibleWith(prm); err != nil {
			return err
		}

		s.log.Debug("loaded persisted state",
			zap.Uint64("emitted", st.Emitted()),
			zap.Uint64("remaining", st.Remaining()),
		)

		return nil
	})
}

// Close releases the state file and its lock.
func (s *Store) Close() error {
	s.log.Debug("closing state file",
		zap.String("path", s.path),
	)

	return s.boltDB.Close()
}
