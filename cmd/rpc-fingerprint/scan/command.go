// Package scan implements the `scan` command for rpc-fingerprint.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/smolgroot/rpc-fingerprint/cmd/rpc-fingerprint/internal/helper"
	"github.com/smolgroot/rpc-fingerprint/internal/cmdlogger"
	"github.com/smolgroot/rpc-fingerprint/internal/config"
	"github.com/smolgroot/rpc-fingerprint/internal/fingerprint"
	"github.com/smolgroot/rpc-fingerprint/internal/output"
	"github.com/smolgroot/rpc-fingerprint/internal/version"
)

func Command(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:        "scan",
		Usage:       "fingerprints JSON-RPC endpoints and checks the detected clients for known vulnerabilities",
		Description: "fingerprints JSON-RPC endpoints and checks the detected clients for known vulnerabilities",
		Flags: append([]cli.Flag{
			&cli.DurationFlag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Usage:   "timeout for each RPC request",
				Value:   10 * time.Second,
			},
			&cli.IntFlag{
				Name:  "max-concurrent",
				Usage: "maximum number of endpoints to probe at once",
				Value: 5,
			},
		}, helper.GetGlobalFlags()...),
		ArgsUsage: "<endpoint1> [endpoint2...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return action(ctx, cmd, stdout, stderr)
		},
	}
}

func action(ctx context.Context, cmd *cli.Command, stdout, _ io.Writer) error {
	endpoints := cmd.Args().Slice()
	if len(endpoints) == 0 {
		return errors.New("please provide at least one endpoint URL, or see the help document")
	}

	conf, err := helper.LoadConfig(cmd)
	if err != nil {
		return err
	}

	// a broken database is not a reason to skip probing; matching just
	// comes up empty
	db, err := helper.LoadDatabase(cmd, conf)
	if err != nil {
		cmdlogger.Warnf("continuing without vulnerability matching: %v", err)
	}

	fingerprinter := &fingerprint.Fingerprinter{
		DB:            db,
		Timeout:       timeout(cmd, conf),
		MaxConcurrent: maxConcurrent(cmd, conf),
		UserAgent:     "rpc-fingerprint/" + version.Version,
		ShouldIgnore: func(id string) (bool, string) {
			ignore, entry := conf.ShouldIgnore(id)

			return ignore, entry.Reason
		},
	}

	results := fingerprinter.FingerprintAll(ctx, endpoints)

	writer, termWidth, closeOutput, err := helper.OpenOutput(cmd, stdout)
	if err != nil {
		return err
	}
	if closeOutput != nil {
		defer closeOutput()
	}

	if err := output.PrintResults(results, db, cmd.String("format"), writer, termWidth); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if fingerprint.HasVulnerabilities(results) {
		return fingerprint.ErrVulnerabilitiesFound
	}

	return nil
}

// timeout resolves the per-request timeout, with an explicit flag
// taking precedence over the config file.
func timeout(cmd *cli.Command, conf config.Config) time.Duration {
	if !cmd.IsSet("timeout") && conf.Timeout > 0 {
		return time.Duration(conf.Timeout) * time.Second
	}

	return cmd.Duration("timeout")
}

func maxConcurrent(cmd *cli.Command, conf config.Config) int {
	if !cmd.IsSet("max-concurrent") && conf.MaxConcurrent > 0 {
		return conf.MaxConcurrent
	}

	return int(cmd.Int("max-concurrent"))
}
