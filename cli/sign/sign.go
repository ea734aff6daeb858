package sign

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nspcc-dev/sign-deployment/cli/input"
	"github.com/nspcc-dev/sign-deployment/cli/options"
	"github.com/nspcc-dev/sign-deployment/pkg/config"
	"github.com/nspcc-dev/sign-deployment/pkg/deployment"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

var (
	adminKeyFlag = cli.StringFlag{
		Name:  "admin-private-key, a",
		Usage: "private key of the new program owner (prompted for if not given)",
	}
	feeKeyFlag = cli.StringFlag{
		Name:  "fee-private-key, f",
		Usage: "private key paying the deployment fee (admin key is used if not given)",
	}
)

var errNoPaths = errors.New("both input and output must be specified")

// NewCommands returns signing commands.
func NewCommands() []cli.Command {
	signFlags := append([]cli.Flag{
		cli.StringFlag{Name: "input, i", Usage: "deployment transaction JSON file to modify"},
		cli.StringFlag{Name: "output, o", Usage: "file to save the modified transaction to"},
		adminKeyFlag,
		feeKeyFlag,
	}, options.Common...)
	batchFlags := append([]cli.Flag{
		cli.StringFlag{Name: "input-dir", Usage: "directory with deployment transaction JSON files"},
		cli.StringFlag{Name: "output-dir", Usage: "directory to save modified transactions to (created if missing)"},
		cli.IntFlag{Name: "workers, w", Usage: "number of transactions signed concurrently (overrides configuration)"},
		adminKeyFlag,
		feeKeyFlag,
	}, options.Common...)
	return []cli.Command{
		{
			Name:      "sign",
			Usage:     "Make the admin key the owner of a deployment and pay its fee again",
			UsageText: "sign -i <file.in> -o <file.out> [-a <key>] [-f <key>] [-n <network>] [--config-file <file>] [-d]",
			Description: `Sets the program owner of the deployment transaction from the input file to
   the address of the admin key, updates the program checksum, attests the
   new deployment ID with the admin key and re-creates the public fee (with
   the same amounts) paid by the fee key. The result is written to the output
   file, nothing is written if any step fails. The admin key is prompted for
   if not given on the command line. Deployments with private fees are not
   supported.
`,
			Action: signDeployment,
			Flags:  signFlags,
		},
		{
			Name:      "sign-batch",
			Usage:     "Sign every deployment transaction from a directory",
			UsageText: "sign-batch --input-dir <dir> --output-dir <dir> [-a <key>] [-f <key>] [-w <n>] [-n <network>] [--config-file <file>] [-d]",
			Description: `Does the same as 'sign' for every *.json file from the input directory,
   results are written into files with the same names in the output
   directory. Files are processed concurrently and independently, failure
   to sign one of them doesn't affect the others, but the command exits
   with an error.
`,
			Action: signBatch,
			Flags:  batchFlags,
		},
	}
}

// setup holds everything both commands need.
type setup struct {
	cfg    config.Config
	log    *zap.Logger
	keys   *deployment.Keys
	signer *deployment.Signer
}

func newSetup(ctx *cli.Context) (*setup, error) {
	if ctx.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", ctx.Args())
	}
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return nil, err
	}
	net, err := options.GetNetwork(ctx, cfg.ApplicationConfiguration)
	if err != nil {
		return nil, err
	}
	k, err := getKeys(ctx)
	if err != nil {
		return nil, err
	}
	log, _, err := options.HandleLoggingParams(ctx.Bool("debug"), cfg.ApplicationConfiguration)
	if err != nil {
		return nil, err
	}
	signer, err := deployment.NewSigner(net, log)
	if err != nil {
		return nil, err
	}
	return &setup{cfg: cfg, log: log, keys: k, signer: signer}, nil
}

func getKeys(ctx *cli.Context) (*deployment.Keys, error) {
	adminKey := ctx.String("admin-private-key")
	if len(adminKey) == 0 {
		var err error
		adminKey, err = input.ReadSecret("Enter admin private key > ")
		if err != nil {
			return nil, fmt.Errorf("failed to read admin key: %w", err)
		}
	}
	return deployment.ParseKeys(adminKey, ctx.String("fee-private-key"))
}

func printKeys(ctx *cli.Context, k *deployment.Keys) {
	fmt.Fprintf(ctx.App.Writer, "Using the private key for address: %s\n", k.Admin.Address())
	if k.Fee != k.Admin {
		fmt.Fprintf(ctx.App.Writer, "Paying the fee from address: %s\n", k.Fee.Address())
	}
}

func signDeployment(ctx *cli.Context) error {
	in, out := ctx.String("input"), ctx.String("output")
	if len(in) == 0 || len(out) == 0 {
		return cli.NewExitError(errNoPaths, 1)
	}
	s, err := newSetup(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = s.log.Sync() }()

	fmt.Fprintln(ctx.App.Writer, "Starting deployment transaction modification...")
	printKeys(ctx, s.keys)
	tx, err := s.signer.SignFile(in, out, s.keys)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to sign %s: %w", in, err), 1)
	}
	fmt.Fprintln(ctx.App.Writer, "✅ Successfully modified deployment transaction")
	fmt.Fprintf(ctx.App.Writer, "Transaction ID: %s\n", tx.ID)
	fmt.Fprintf(ctx.App.Writer, "📁 Output saved to: %s\n", out)
	return nil
}

func signBatch(ctx *cli.Context) error {
	inDir, outDir := ctx.String("input-dir"), ctx.String("output-dir")
	if len(inDir) == 0 || len(outDir) == 0 {
		return cli.NewExitError(errNoPaths, 1)
	}
	s, err := newSetup(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = s.log.Sync() }()

	workers := s.cfg.ApplicationConfiguration.Workers
	if ctx.IsSet("workers") {
		workers = ctx.Int("workers")
	}
	if workers <= 0 {
		return cli.NewExitError(fmt.Errorf("invalid number of workers: %d", workers), 1)
	}

	gctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Fprintln(ctx.App.Writer, "Starting deployment transactions modification...")
	printKeys(ctx, s.keys)
	res, err := s.signer.SignBatch(gctx, inDir, outDir, s.keys, workers)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	var failed int
	for _, r := range res {
		if r.Err != nil {
			failed++
			fmt.Fprintf(ctx.App.Writer, "❌ %s: %v\n", r.Input, r.Err)
			continue
		}
		fmt.Fprintf(ctx.App.Writer, "✅ %s -> %s (%s)\n", r.Input, r.Output, r.ID)
	}
	fmt.Fprintf(ctx.App.Writer, "Signed %d of %d transactions\n", len(res)-failed, len(res))
	if failed != 0 {
		return cli.NewExitError(fmt.Errorf("failed to sign %d of %d transactions", failed, len(res)), 1)
	}
	return nil
}
