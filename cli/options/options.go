/*
Package options contains a set of common CLI options and helper functions to use them.
*/
package options

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nspcc-dev/sign-deployment/pkg/config"
	"github.com/nspcc-dev/sign-deployment/pkg/config/netmode"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NetworkFlag is a long flag name for the network. It can be used to check
// for flag presence in the context.
const NetworkFlag = "network"

// Network is a flag for choosing the network to operate on.
var Network = cli.StringFlag{
	Name:  NetworkFlag + ", n",
	Usage: "network to use: 0 (mainnet), 1 (testnet) or 2 (canary); defaults to the configuration value or testnet",
}

// ConfigFile is a flag for commands that use the configuration file.
var ConfigFile = cli.StringFlag{
	Name:  "config-file",
	Usage: "path to the configuration file",
}

// Debug is a flag for commands that allow debug logging.
var Debug = cli.BoolFlag{
	Name:  "debug, d",
	Usage: "enable debug logging (overrides configuration)",
}

// Common is a set of flags used by all signing commands.
var Common = []cli.Flag{Network, ConfigFile, Debug}

// GetConfigFromContext returns the configuration from the file given with
// --config-file or the default one.
func GetConfigFromContext(ctx *cli.Context) (config.Config, error) {
	if configFile := ctx.String("config-file"); len(configFile) != 0 {
		return config.LoadFile(configFile)
	}
	return config.Default(), nil
}

// GetNetwork examines Context's flags and returns the appropriate network.
// It defaults to the configured one if no flag is given.
func GetNetwork(ctx *cli.Context, cfg config.ApplicationConfiguration) (netmode.ID, error) {
	s := ctx.String(NetworkFlag)
	if len(s) == 0 {
		return cfg.Network, nil
	}
	net, err := netmode.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("invalid network: %w", err)
	}
	return net, nil
}

// HandleLoggingParams reads logging parameters.
// If a user selected debug level -- function enables it.
// If logPath is configured -- function creates a dir and a file for logging.
func HandleLoggingParams(debug bool, cfg config.ApplicationConfiguration) (*zap.Logger, *zap.AtomicLevel, error) {
	var (
		level = zapcore.InfoLevel
		err   error
	)
	if len(cfg.LogLevel) > 0 {
		level, err = zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("log setting: %w", err)
		}
	}
	if debug {
		level = zapcore.DebugLevel
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cc.Encoding = "console"
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil

	if logPath := cfg.LogPath; logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return nil, nil, fmt.Errorf("could not create dir for logger: %w", err)
		}
		cc.OutputPaths = []string{logPath}
	}

	log, err := cc.Build()
	return log, &cc.Level, err
}
