package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/4b11b4/hexmint/pkg/mintstore"
	"github.com/4b11b4/hexmint/pkg/util/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "HEXMINT"

var v = viper.New()

// InitConfig prepares the application configuration: defaults, environment
// variables with the HEXMINT_ prefix and, when path is not empty, a config
// file. Must be called before any other function of this package.
func InitConfig(path string) error {
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("state.path", "hexmint-state.db")
	v.SetDefault("generator.hex_digits", 8)
	v.SetDefault("generator.sections", 1024)
	v.SetDefault("logger.level", "info")
	v.SetDefault("server.address", "localhost:8080")
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	return nil
}

// StatePath returns the configured path of the state file.
func StatePath() string {
	return v.GetString("state.path")
}

// ServerAddress returns the configured listen address of the serving mode.
func ServerAddress() string {
	return v.GetString("server.address")
}

// ShutdownTimeout returns the configured graceful shutdown timeout of the
// serving mode.
func ShutdownTimeout() time.Duration {
	return v.GetDuration("server.shutdown_timeout")
}

// NewLogger constructs the application logger at the configured level.
func NewLogger() (*zap.Logger, error) {
	return logger.New(v.GetString("logger.level"))
}

// OpenStore opens and initializes the minting store from the configuration.
// The caller closes it.
func OpenStore(log *zap.Logger) (*mintstore.Store, error) {
	s, err := OpenStoreNoInit(log)
	if err != nil {
		return nil, err
	}

	if err := s.Init(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("init state: %w", err)
	}

	return s, nil
}

// OpenStoreNoInit opens the minting store without touching the persisted
// state, so it works even when the state is rejected as corrupt or
// incompatible. The caller closes it.
func OpenStoreNoInit(log *zap.Logger) (*mintstore.Store, error) {
	s := mintstore.New(
		mintstore.WithPath(v.GetString("state.path")),
		mintstore.WithHexDigits(v.GetInt("generator.hex_digits")),
		mintstore.WithSections(v.GetUint64("generator.sections")),
		mintstore.WithLogger(log),
	)

	if err := s.Open(); err != nil {
		return nil, fmt.Errorf("open state file: %w", err)
	}

	return s, nil
}
