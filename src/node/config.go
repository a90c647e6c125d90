package node

import (
	"testing"
	"time"

	"github.com/mosaicnetworks/blockjournal/src/common"
	"github.com/sirupsen/logrus"
)

// Config contains the parameters of the sync routines.
type Config struct {
	// SyncInterval is the base period between two sync rounds. The actual
	// period is randomised between SyncInterval and 2*SyncInterval. Zero
	// disables periodic sync.
	SyncInterval time.Duration `mapstructure:"sync-interval"`
	// Timeout bounds every request sent to a single peer.
	Timeout time.Duration `mapstructure:"timeout"`
	// Moniker is a friendly name reported in the stats.
	Moniker string `mapstructure:"moniker"`
	Logger  *logrus.Logger
}

// NewConfig ...
func NewConfig(syncInterval time.Duration,
	timeout time.Duration,
	moniker string,
	logger *logrus.Logger) *Config {

	return &Config{
		SyncInterval: syncInterval,
		Timeout:      timeout,
		Moniker:      moniker,
		Logger:       logger,
	}
}

// DefaultConfig ...
func DefaultConfig() *Config {
	logger := logrus.New()
	logger.Level = logrus.DebugLevel

	return &Config{
		SyncInterval: 10 * time.Second,
		Timeout:      5 * time.Second,
		Logger:       logger,
	}
}

// TestConfig returns a Config with short intervals and a logger that writes
// to the test output.
func TestConfig(t testing.TB) *Config {
	config := DefaultConfig()
	config.SyncInterval = 10 * time.Millisecond
	config.Timeout = 200 * time.Millisecond
	config.Logger = common.NewTestLogger(t, common.TestLogLevel)
	return config
}
