package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/mosaicnetworks/blockjournal/src/common"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default filenames.
const (
	// DefaultChainFile is the default name of the file containing the chain
	// when using the json store.
	DefaultChainFile = "chain.json"

	// DefaultBadgerFile is the default name of the folder containing the Badger
	// database
	DefaultBadgerFile = "badger_db"

	// DefaultSQLiteFile is the default name of the SQLite database file.
	DefaultSQLiteFile = "chain.db"
)

// Store types.
const (
	JSONStore   = "json"
	BadgerStore = "badger"
	SQLiteStore = "sqlite"
	InmemStore  = "inmem"
)

// Default configuration values.
const (
	DefaultLogLevel     = "info"
	DefaultServiceAddr  = "127.0.0.1:8000"
	DefaultSyncInterval = 10 * time.Second
	DefaultTimeout      = 5 * time.Second
	DefaultStore        = JSONStore
	DefaultNoService    = false
	DefaultNoSync       = false
)

// Config contains all the configuration properties of a blockjournal node.
type Config struct {
	// DataDir is the top-level directory containing blockjournal configuration
	// and data
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// LogFile, if set, is the base path of files that receive a copy of the
	// log output: <LogFile>.info.log and <LogFile>.debug.log
	LogFile string `mapstructure:"log-file"`

	// ServiceAddr is the address:port of the HTTP service which serves the
	// chain to other nodes.
	ServiceAddr string `mapstructure:"listen"`

	// NoService disables the HTTP service. The node can still pull from its
	// peers but other nodes cannot pull from it.
	NoService bool `mapstructure:"no-service"`

	// Peers is a list of host:port addresses of other nodes. If empty, peers
	// are read from peers.json in the DataDir.
	Peers []string `mapstructure:"peers"`

	// SyncInterval is the base period between two sync rounds.
	SyncInterval time.Duration `mapstructure:"sync-interval"`

	// Timeout bounds every request sent to a peer.
	Timeout time.Duration `mapstructure:"timeout"`

	// NoSync disables the periodic sync loop.
	NoSync bool `mapstructure:"no-sync"`

	// Store selects the persistence backend: json, badger, sqlite, or inmem.
	Store string `mapstructure:"store"`

	// DatabaseDir is the directory containing the badger database files.
	DatabaseDir string `mapstructure:"db"`

	// Moniker defines the friendly name of this node
	Moniker string `mapstructure:"moniker"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:      DefaultDataDir(),
		LogLevel:     DefaultLogLevel,
		ServiceAddr:  DefaultServiceAddr,
		NoService:    DefaultNoService,
		Peers:        []string{},
		SyncInterval: DefaultSyncInterval,
		Timeout:      DefaultTimeout,
		NoSync:       DefaultNoSync,
		Store:        DefaultStore,
		DatabaseDir:  DefaultDatabaseDir(),
	}

	return config
}

// NewTestConfig returns a config object with default values and a special
// logger for debugging tests.
func NewTestConfig(t testing.TB, level logrus.Level) *Config {
	config := NewDefaultConfig()
	config.SyncInterval = 10 * time.Millisecond
	config.Timeout = 200 * time.Millisecond
	config.logger = common.NewTestLogger(t, level)
	return config
}

// SetDataDir sets the top-level blockjournal directory, and updates the
// database directory if it is currently set to the default value. If the
// database directory is not currently the default, it means the user has
// explicitely set it to something else, so avoid changing it again here.
func (c *Config) SetDataDir(dataDir string) {
	c.DataDir = dataDir
	if c.DatabaseDir == DefaultDatabaseDir() {
		c.DatabaseDir = filepath.Join(dataDir, DefaultBadgerFile)
	}
}

// ChainFile returns the full path of the file containing the chain.
func (c *Config) ChainFile() string {
	return filepath.Join(c.DataDir, DefaultChainFile)
}

// SQLiteFile returns the full path of the SQLite database file.
func (c *Config) SQLiteFile() string {
	return filepath.Join(c.DataDir, DefaultSQLiteFile)
}

// Logger returns a formatted logrus Entry, with prefix set to "blockjournal".
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)

		if c.LogFile != "" {
			c.logger.Hooks.Add(fileHook(c.LogFile))
		}
	}
	return c.logger.WithField("prefix", "blockjournal")
}

// fileHook copies info and debug messages to separate files, and warnings and
// errors to the info file.
func fileHook(base string) logrus.Hook {
	info := base + ".info.log"
	debug := base + ".debug.log"

	pathMap := lfshook.PathMap{
		logrus.DebugLevel: debug,
		logrus.InfoLevel:  info,
		logrus.WarnLevel:  info,
		logrus.ErrorLevel: info,
		logrus.FatalLevel: info,
		logrus.PanicLevel: info,
	}

	return lfshook.NewHook(
		pathMap,
		&logrus.TextFormatter{},
	)
}

// DefaultDatabaseDir returns the default path for the badger database files.
func DefaultDatabaseDir() string {
	return filepath.Join(DefaultDataDir(), DefaultBadgerFile)
}

// DefaultDataDir return the default directory name for top-level blockjournal
// config based on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".BlockJournal")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "BlockJournal")
		} else {
			return filepath.Join(home, ".blockjournal")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
