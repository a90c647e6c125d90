package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

//AddCommonFlags adds the flags shared by every command that touches the data
//directory
func AddCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("datadir", _config.Journal.DataDir, "Top-level directory for configuration and data")
	cmd.Flags().String("log", _config.Journal.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.Flags().String("log-file", _config.Journal.LogFile, "Also write logs to <log-file>.info.log and <log-file>.debug.log")

	// Store
	cmd.Flags().String("store", _config.Journal.Store, "Persistence backend: json, badger, sqlite, or inmem")
	cmd.Flags().String("db", _config.Journal.DatabaseDir, "Badger database directory")
}

//AddPeerFlags adds the flags used by commands that talk to other nodes
func AddPeerFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("peers", _config.Journal.Peers, "Comma-separated list of peer IP:Port (default: read peers.json)")
	cmd.Flags().DurationP("timeout", "t", _config.Journal.Timeout, "Timeout of requests to peers")
	cmd.Flags().String("moniker", _config.Journal.Moniker, "Optional name")
}

func loadConfig(cmd *cobra.Command, args []string) error {

	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	// If --datadir was explicitely set, but not --db, this will update the
	// default database dir to be inside the new datadir
	_config.Journal.SetDataDir(_config.Journal.DataDir)

	logFields := logrus.Fields{
		"DataDir":      _config.Journal.DataDir,
		"LogLevel":     _config.Journal.LogLevel,
		"ServiceAddr":  _config.Journal.ServiceAddr,
		"NoService":    _config.Journal.NoService,
		"Peers":        _config.Journal.Peers,
		"SyncInterval": _config.Journal.SyncInterval,
		"Timeout":      _config.Journal.Timeout,
		"NoSync":       _config.Journal.NoSync,
		"Store":        _config.Journal.Store,
		"Moniker":      _config.Journal.Moniker,
	}

	if _config.Journal.Store == "badger" {
		logFields["DatabaseDir"] = _config.Journal.DatabaseDir
	}

	_config.Journal.Logger().WithFields(logFields).Debug(cmd.Name())

	return nil
}

// Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	// Register flags with viper. Include flags from this command and all other
	// persistent flags from the parent
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// first unmarshal to read from CLI flags
	if err := viper.Unmarshal(_config); err != nil {
		return err
	}

	// look for config file in [datadir]/blockjournal.toml (.json, .yaml also work)
	viper.SetConfigName("blockjournal")          // name of config file (without extension)
	viper.AddConfigPath(_config.Journal.DataDir) // search root directory

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		_config.Journal.Logger().Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		_config.Journal.Logger().Debugf("No config file found in: %s", _config.Journal.DataDir)
	} else {
		return err
	}

	// second unmarshal to read from config file
	return viper.Unmarshal(_config)
}
