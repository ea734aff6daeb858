package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nspcc-dev/sign-deployment/cli/sign"
	"github.com/nspcc-dev/sign-deployment/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "sign-deployment\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates an instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "sign-deployment"
	ctl.Version = config.Version
	ctl.Usage = "Re-sign program deployment transactions with a new owner and fee payer"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, sign.NewCommands()...)
	return ctl
}
