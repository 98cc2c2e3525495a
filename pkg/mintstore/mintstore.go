package mintstore

import (
	"io/fs"
	"time"

	"github.com/4b11b4/hexmint/pkg/codegen"
	"github.com/4b11b4/hexmint/pkg/util/rand"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// Store is a durable minting store: generator state persisted in a bbolt
// file plus the fixed code-shape configuration. Every mint is a single
// load-advance-persist transaction against the file, so either a code is
// emitted and the advanced state is durable, or nothing changed.
//
// The underlying file is locked for the lifetime of an opened Store, which
// keeps concurrent processes from interleaving their transactions.
type Store struct {
	*cfg

	boltDB *bbolt.DB
}

// Option is an option of Store's constructor.
type Option func(*cfg)

type cfg struct {
	path string

	perm fs.FileMode

	boltOptions *bbolt.Options

	hexDigits int

	sections uint64

	rnd codegen.Rand

	log *zap.Logger
}

func defaultCfg() *cfg {
	return &cfg{
		perm: 0o600,
		boltOptions: &bbolt.Options{
			Timeout: 100 * time.Millisecond,
		},
		hexDigits: 8,
		sections:  1024,
		rnd:       rand.Source{},
		log:       zap.L(),
	}
}

// New creates and returns new Store instance.
func New(opts ...Option) *Store {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	return &Store{
		cfg: c,
	}
}

// params returns the generator parameters implied by the configured code
// shape: the domain holds every value of the configured hex width.
func (c *cfg) params() codegen.Params {
	return codegen.Params{
		Domain:   uint64(1) << (4 * uint(c.hexDigits)),
		Sections: c.sections,
	}
}

// WithPath returns option to set the system path of the state file.
func WithPath(path string) Option {
	return func(c *cfg) {
		c.path = path
	}
}

// WithPermissions returns option to specify permission bits of the state
// file.
func WithPermissions(perm fs.FileMode) Option {
	return func(c *cfg) {
		c.perm = perm
	}
}

// WithHexDigits returns option to set the width of minted codes in hex
// digits. Width is fixed at state creation; reopening an existing state
// with a different width fails.
func WithHexDigits(n int) Option {
	return func(c *cfg) {
		c.hexDigits = n
	}
}

// WithSections returns option to set the number of sections the domain is
// split into. Fixed at state creation, like the code width.
func WithSections(n uint64) Option {
	return func(c *cfg) {
		c.sections = n
	}
}

// WithRand returns option to set the selection randomness source.
func WithRand(r codegen.Rand) Option {
	return func(c *cfg) {
		c.rnd = r
	}
}

// WithLogger returns option to specify Store's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l.With(zap.String("component", "MintStore"))
	}
}
