package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/nspcc-dev/sign-deployment/pkg/config/netmode"
	"gopkg.in/yaml.v3"
)

// Version is the version of the tool, set at build time.
var Version string

// Config is the top level struct representing the configuration file.
type Config struct {
	ApplicationConfiguration ApplicationConfiguration `yaml:"ApplicationConfiguration"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ApplicationConfiguration: ApplicationConfiguration{
			Network: netmode.TestNet,
			Workers: runtime.NumCPU(),
		},
	}
}

// LoadFile loads the configuration from the given file on top of the
// default one.
func LoadFile(configPath string) (Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	return Decode(configData)
}

// Decode parses YAML configuration, unknown fields are not allowed.
func Decode(configData []byte) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(configData))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}
	if err := cfg.ApplicationConfiguration.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
