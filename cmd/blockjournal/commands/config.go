package commands

import (
	"github.com/mosaicnetworks/blockjournal/src/config"
)

//CLIConfig contains configuration for the blockjournal commands
type CLIConfig struct {
	Journal  config.Config `mapstructure:",squash"`
	Content  string        `mapstructure:"content"`
	Location string        `mapstructure:"location"`
	Push     bool          `mapstructure:"push"`
}

//NewDefaultCLIConfig creates a CLIConfig with default values
func NewDefaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		Journal: *config.NewDefaultConfig(),
	}
}
