package commands

import (
	"github.com/mosaicnetworks/eventlinker/src/config"
	"github.com/mosaicnetworks/eventlinker/src/simulation"
)

//CLIConfig contains the configuration of every command
type CLIConfig struct {
	Linker     config.Config     `mapstructure:",squash"`
	Simulation simulation.Config `mapstructure:",squash"`
	JSON       bool              `mapstructure:"json"`
	UsePeers   bool              `mapstructure:"use-peers"`
	Moniker    string            `mapstructure:"moniker"`
	NetAddr    string            `mapstructure:"net-addr"`
}

//NewDefaultCLIConfig creates a CLIConfig with default values
func NewDefaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		Linker:     *config.NewDefaultConfig(),
		Simulation: *simulation.NewDefaultConfig(),
	}
}
