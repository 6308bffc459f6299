package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/mosaicnetworks/eventlinker/src/common"
	"github.com/mosaicnetworks/eventlinker/src/hashgraph"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default filenames.
const (
	// DefaultKeyfile is the default name of the file containing a creator's
	// private key
	DefaultKeyfile = "priv_key"

	// DefaultConfigName is the base name of the configuration file, without
	// extension.
	DefaultConfigName = "linker"
)

// Linker types.
const (
	InOrderLinker   = "in-order"
	ConsensusLinker = "consensus"
)

// Default configuration values.
const (
	DefaultLogLevel    = "debug"
	DefaultAncientMode = "generation"
	DefaultLinker      = ConsensusLinker
	DefaultStrict      = false
	DefaultLogRate     = time.Minute
	DefaultCapacity    = 1024
	DefaultQueueSize   = 256
)

// Config contains all the configuration properties of the linking stage.
type Config struct {
	// DataDir is the top-level directory containing configuration files.
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// LogDir, when not empty, is where info and debug logs are mirrored to
	// files.
	LogDir string `mapstructure:"log-dir"`

	// AncientMode selects the ancient indicator: "generation" or
	// "birth-round".
	AncientMode string `mapstructure:"ancient-mode"`

	// Linker selects the linking strategy: "in-order" keeps the links of
	// ancient events, "consensus" severs them.
	Linker string `mapstructure:"linker"`

	// Strict turns contract violations (a regressing event window) into
	// panics. When false they are logged and the offending window is ignored.
	Strict bool `mapstructure:"strict"`

	// LogRate is the minimum period between two log messages of the same
	// category on the linking hot path. Zero disables rate-limiting.
	LogRate time.Duration `mapstructure:"log-rate"`

	// Capacity is a size hint for the linker's index of events.
	Capacity int `mapstructure:"capacity"`

	// QueueSize is the buffer size of the intake stage's input queue.
	QueueSize int `mapstructure:"queue-size"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	return &Config{
		DataDir:     DefaultDataDir(),
		LogLevel:    DefaultLogLevel,
		AncientMode: DefaultAncientMode,
		Linker:      DefaultLinker,
		Strict:      DefaultStrict,
		LogRate:     DefaultLogRate,
		Capacity:    DefaultCapacity,
		QueueSize:   DefaultQueueSize,
	}
}

// NewTestConfig returns a config object with default values, strict contract
// checks, no log rate-limiting, and a special logger for debugging tests.
func NewTestConfig(t testing.TB, level logrus.Level) *Config {
	config := NewDefaultConfig()
	config.Strict = true
	config.LogRate = 0
	config.logger = common.NewTestLogger(t, level)
	return config
}

// Mode parses AncientMode.
func (c *Config) Mode() (hashgraph.AncientMode, error) {
	return hashgraph.ParseAncientMode(c.AncientMode)
}

// Validate checks the fields that have a closed set of values.
func (c *Config) Validate() error {
	if _, err := c.Mode(); err != nil {
		return err
	}
	switch c.Linker {
	case InOrderLinker, ConsensusLinker:
	default:
		return fmt.Errorf("unknown linker %q, expected %q or %q", c.Linker, InOrderLinker, ConsensusLinker)
	}
	if c.Capacity < 0 || c.QueueSize < 0 {
		return fmt.Errorf("capacity and queue-size cannot be negative")
	}
	return nil
}

// SetLogger replaces the underlying logrus Logger.
func (c *Config) SetLogger(logger *logrus.Logger) {
	c.logger = logger
}

// Logger returns a formatted logrus Entry, with prefix set to "linker".
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)
	}
	return c.logger.WithField("prefix", "linker")
}

// Keyfile returns the full path of the file containing the private key.
func (c *Config) Keyfile() string {
	return filepath.Join(c.DataDir, DefaultKeyfile)
}

// DefaultDataDir return the default directory name for top-level linker config
// based on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".EventLinker")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "EventLinker")
		} else {
			return filepath.Join(home, ".eventlinker")
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
