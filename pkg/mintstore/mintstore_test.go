package mintstore

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/4b11b4/hexmint/pkg/codegen"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/stretchr/testify/require"
)

// two hex digits give a domain small enough to walk full cycles in tests
func testOptions(path string) []Option {
	return []Option{
		WithPath(path),
		WithHexDigits(2),
		WithSections(16),
		WithLogger(zap.NewNop()),
	}
}

func openStore(t *testing.T, path string) *Store {
	s := New(testOptions(path)...)

	require.NoError(t, s.Open())
	require.NoError(t, s.Init())

	return s
}

func requireValidCode(t *testing.T, code string, width int) uint64 {
	require.Len(t, code, width)

	v, err := strconv.ParseUint(code, 16, 64)
	require.NoError(t, err)

	return v
}

func TestStoreOpenInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	t.Run("missing path", func(t *testing.T) {
		require.Error(t, New(WithHexDigits(2)).Open())
	})

	t.Run("bad width", func(t *testing.T) {
		require.Error(t, New(WithPath(path), WithHexDigits(0)).Open())
		require.Error(t, New(WithPath(path), WithHexDigits(16)).Open())
	})

	t.Run("uneven split", func(t *testing.T) {
		s := New(WithPath(path), WithHexDigits(2), WithSections(15))
		require.ErrorIs(t, s.Open(), codegen.ErrUnevenSplit)
	})
}

func TestStoreMint(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "state.db"))
	defer s.Close()

	code, err := s.Mint()
	require.NoError(t, err)
	requireValidCode(t, code, 2)

	st, err := s.Status()
	require.NoError(t, err)
	require.EqualValues(t, 1, st.Emitted)
	require.EqualValues(t, 255, st.Remaining)
}

func TestStoreFullCycle(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "state.db"))
	defer s.Close()

	seen := make(map[string]struct{})
	for i := 0; i < 256; i++ {
		code, err := s.Mint()
		require.NoError(t, err)

		v := requireValidCode(t, code, 2)
		require.Less(t, v, uint64(256))

		_, dup := seen[code]
		require.False(t, dup, "duplicate code %q at mint %d", code, i)
		seen[code] = struct{}{}
	}

	require.Len(t, seen, 256)
}

func TestStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	seen := make(map[string]struct{})

	s := openStore(t, path)
	for i := 0; i < 100; i++ {
		code, err := s.Mint()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}
	require.NoError(t, s.Close())

	// the cycle continues after a restart exactly where it stopped
	s = openStore(t, path)
	defer s.Close()

	st, err := s.Status()
	require.NoError(t, err)
	require.EqualValues(t, 100, st.Emitted)

	for i := 0; i < 156; i++ {
		code, err := s.Mint()
		require.NoError(t, err)

		_, dup := seen[code]
		require.False(t, dup, "duplicate code %q after reopen", code)
		seen[code] = struct{}{}
	}

	require.Len(t, seen, 256)
}

func TestStoreMintBatch(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "state.db"))
	defer s.Close()

	_, err := s.MintBatch(0)
	require.Error(t, err)

	codes, err := s.MintBatch(64)
	require.NoError(t, err)
	require.Len(t, codes, 64)

	seen := make(map[string]struct{})
	for _, c := range codes {
		requireValidCode(t, c, 2)
		seen[c] = struct{}{}
	}
	require.Len(t, seen, 64)

	// single mints never revisit the batch before the cycle completes
	for i := 0; i < 192; i++ {
		code, err := s.Mint()
		require.NoError(t, err)

		_, dup := seen[code]
		require.False(t, dup)
		seen[code] = struct{}{}
	}
}

func TestStoreConfigMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s := openStore(t, path)
	_, err := s.Mint()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	t.Run("different width", func(t *testing.T) {
		s := New(WithPath(path), WithHexDigits(3), WithSections(16), WithLogger(zap.NewNop()))
		require.NoError(t, s.Open())
		defer s.Close()

		require.ErrorIs(t, s.Init(), codegen.ErrConfigMismatch)
	})

	t.Run("different sections", func(t *testing.T) {
		s := New(WithPath(path), WithHexDigits(2), WithSections(8), WithLogger(zap.NewNop()))
		require.NoError(t, s.Open())
		defer s.Close()

		require.ErrorIs(t, s.Init(), codegen.ErrConfigMismatch)
	})
}

func TestStoreCorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s := openStore(t, path)
	_, err := s.Mint()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// damage the persisted record behind the store's back
	db, err := bbolt.Open(path, 0o600, nil)
	require.NoError(t, err)
	require.NoError(t, db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(stateBucket)
		data := append([]byte{}, b.Get(stateKey)...)
		data[0] = 'X'
		return b.Put(stateKey, data)
	}))
	require.NoError(t, db.Close())

	s = New(testOptions(path)...)
	require.NoError(t, s.Open())
	defer s.Close()

	// refused on load, never repaired, no code emitted
	require.ErrorIs(t, s.Init(), codegen.ErrCorruptState)

	_, err = s.Mint()
	require.ErrorIs(t, err, codegen.ErrCorruptState)
}

func TestStoreReset(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "state.db"))
	defer s.Close()

	for i := 0; i < 10; i++ {
		_, err := s.Mint()
		require.NoError(t, err)
	}

	require.NoError(t, s.Reset())

	st, err := s.Status()
	require.NoError(t, err)
	require.Zero(t, st.Emitted)
	require.EqualValues(t, 256, st.Remaining)
}
