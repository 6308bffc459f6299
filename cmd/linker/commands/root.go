package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mosaicnetworks/eventlinker/src/config"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var (
	_config = NewDefaultCLIConfig()
)

//RootCmd is the root command for the linker
var RootCmd = &cobra.Command{
	Use:              "linker",
	Short:            "hashgraph event linker",
	TraverseChildren: true,
}

func init() {
	AddRootFlags(RootCmd)

	RootCmd.AddCommand(
		NewSimulateCmd(),
		NewKeygenCmd(),
		VersionCmd,
	)
}

//AddRootFlags adds the flags shared by every command
func AddRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("datadir", _config.Linker.DataDir, "Top-level directory for configuration and keys")
	cmd.PersistentFlags().String("log", _config.Linker.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.PersistentFlags().String("log-dir", _config.Linker.LogDir, "Directory where logs are mirrored to files")

	// Linker
	cmd.PersistentFlags().String("ancient-mode", _config.Linker.AncientMode, "generation or birth-round")
	cmd.PersistentFlags().String("linker", _config.Linker.Linker, "in-order or consensus")
	cmd.PersistentFlags().Bool("strict", _config.Linker.Strict, "Panic on contract violations")
	cmd.PersistentFlags().Duration("log-rate", _config.Linker.LogRate, "Minimum period between repeated linker diagnostics")
	cmd.PersistentFlags().Int("capacity", _config.Linker.Capacity, "Initial capacity of the event index")
	cmd.PersistentFlags().Int("queue-size", _config.Linker.QueueSize, "Size of the intake queue")
}

func loadConfig(cmd *cobra.Command, args []string) error {

	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	if err := _config.Linker.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(&_config.Linker)
	if err != nil {
		return err
	}
	_config.Linker.SetLogger(logger)

	_config.Linker.Logger().WithFields(logrus.Fields{
		"linker.DataDir":     _config.Linker.DataDir,
		"linker.LogLevel":    _config.Linker.LogLevel,
		"linker.LogDir":      _config.Linker.LogDir,
		"linker.AncientMode": _config.Linker.AncientMode,
		"linker.Linker":      _config.Linker.Linker,
		"linker.Strict":      _config.Linker.Strict,
		"linker.LogRate":     _config.Linker.LogRate,
		"linker.Capacity":    _config.Linker.Capacity,
		"linker.QueueSize":   _config.Linker.QueueSize,
	}).Debug("CONFIG")

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

	// look for config file in [datadir]/linker.toml (.json, .yaml also work)
	viper.SetConfigName(config.DefaultConfigName)
	viper.AddConfigPath(_config.Linker.DataDir)

	if err := viper.ReadInConfig(); err == nil {
		logrus.Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		logrus.Debugf("No config file found in: %s", _config.Linker.DataDir)
	} else {
		return err
	}

	// second unmarshal to read from config file
	return viper.Unmarshal(_config)
}

// newLogger creates the logger of every component. When LogDir is set, info
// and debug output is also written to files in that directory.
func newLogger(conf *config.Config) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.Level = config.LogLevel(conf.LogLevel)
	logger.Formatter = new(prefixed.TextFormatter)

	if conf.LogDir == "" {
		return logger, nil
	}

	if err := os.MkdirAll(conf.LogDir, 0700); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	pathMap := lfshook.PathMap{
		logrus.InfoLevel:  filepath.Join(conf.LogDir, "linker_info.log"),
		logrus.DebugLevel: filepath.Join(conf.LogDir, "linker_debug.log"),
		logrus.WarnLevel:  filepath.Join(conf.LogDir, "linker_warn.log"),
		logrus.ErrorLevel: filepath.Join(conf.LogDir, "linker_warn.log"),
	}

	logger.Hooks.Add(lfshook.NewHook(
		pathMap,
		&logrus.TextFormatter{},
	))

	return logger, nil
}
