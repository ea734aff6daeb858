package config

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/sign-deployment/pkg/config/netmode"
	"go.uber.org/zap/zapcore"
)

// ApplicationConfiguration contains settings of the signing tool itself.
type ApplicationConfiguration struct {
	// LogLevel is one of zap levels (debug, info, warn, error...), info is
	// used when empty.
	LogLevel string `yaml:"LogLevel"`
	// LogPath is a file to write logs to instead of stderr.
	LogPath string `yaml:"LogPath"`
	// Network is used when no network is specified on the command line.
	Network netmode.ID `yaml:"Network"`
	// Workers limits the number of transactions signed concurrently in
	// batch mode.
	Workers int `yaml:"Workers"`
}

// Validate checks ApplicationConfiguration for internal consistency.
func (a ApplicationConfiguration) Validate() error {
	if len(a.LogLevel) > 0 {
		if _, err := zapcore.ParseLevel(a.LogLevel); err != nil {
			return fmt.Errorf("invalid LogLevel: %w", err)
		}
	}
	if !a.Network.IsValid() {
		return fmt.Errorf("invalid Network: %s", a.Network)
	}
	if a.Workers <= 0 {
		return errors.New("Workers must be positive")
	}
	return nil
}
