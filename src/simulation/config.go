package simulation

import "fmt"

// Default simulation values.
const (
	DefaultPeers          = 4
	DefaultEvents         = 10000
	DefaultEventsPerRound = 3
	DefaultRoundsKept     = 26
	DefaultWindowEvery    = 50
	DefaultForgeRate      = 0.01
	DefaultDropRate       = 0.01
	DefaultShuffle        = 8
	DefaultSeed           = 1
)

// Config contains the parameters of a simulation.
type Config struct {
	// Peers is the number of creators. Ignored when a PeerSet is given.
	Peers int `mapstructure:"peers"`

	// Events is the number of events to generate.
	Events int `mapstructure:"events"`

	// EventsPerRound is how many events each peer creates, on average,
	// before the birth round advances.
	EventsPerRound int `mapstructure:"events-per-round"`

	// RoundsKept is how many indicator values stay non-ancient when the
	// window advances.
	RoundsKept uint64 `mapstructure:"rounds-kept"`

	// WindowEvery is the number of generated events between window updates.
	WindowEvery int `mapstructure:"window-every"`

	// ForgeRate is the probability that an event carries a forged parent
	// descriptor.
	ForgeRate float64 `mapstructure:"forge-rate"`

	// DropRate is the probability that an event is never delivered.
	DropRate float64 `mapstructure:"drop-rate"`

	// Shuffle is the size of the reordering buffer. 0 delivers in creation
	// order.
	Shuffle int `mapstructure:"shuffle"`

	// Seed seeds the generator.
	Seed int64 `mapstructure:"seed"`
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Peers:          DefaultPeers,
		Events:         DefaultEvents,
		EventsPerRound: DefaultEventsPerRound,
		RoundsKept:     DefaultRoundsKept,
		WindowEvery:    DefaultWindowEvery,
		ForgeRate:      DefaultForgeRate,
		DropRate:       DefaultDropRate,
		Shuffle:        DefaultShuffle,
		Seed:           DefaultSeed,
	}
}

// Validate checks the ranges of the parameters.
func (c *Config) Validate() error {
	switch {
	case c.Peers < 2:
		return fmt.Errorf("peers must be at least 2, got %d", c.Peers)
	case c.Events < 0:
		return fmt.Errorf("events must not be negative, got %d", c.Events)
	case c.EventsPerRound < 1:
		return fmt.Errorf("events-per-round must be positive, got %d", c.EventsPerRound)
	case c.RoundsKept < 1:
		return fmt.Errorf("rounds-kept must be positive, got %d", c.RoundsKept)
	case c.WindowEvery < 1:
		return fmt.Errorf("window-every must be positive, got %d", c.WindowEvery)
	case c.ForgeRate < 0 || c.ForgeRate > 1:
		return fmt.Errorf("forge-rate must be in [0, 1], got %v", c.ForgeRate)
	case c.DropRate < 0 || c.DropRate > 1:
		return fmt.Errorf("drop-rate must be in [0, 1], got %v", c.DropRate)
	case c.Shuffle < 0:
		return fmt.Errorf("shuffle must not be negative, got %d", c.Shuffle)
	}
	return nil
}
