// Package clients implements the `clients` command, which lists the
// client implementations that can be detected.
package clients

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/smolgroot/rpc-fingerprint/cmd/rpc-fingerprint/internal/helper"
	"github.com/smolgroot/rpc-fingerprint/internal/clientinfo"
	"github.com/smolgroot/rpc-fingerprint/internal/output"
)

func Command(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:        "clients",
		Usage:       "lists the Ethereum client implementations that can be detected",
		Description: "lists the Ethereum client implementations that can be detected",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "include-dev",
				Usage: "also list local development tools such as Anvil and Hardhat",
			},
		}, helper.GetOutputFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return action(ctx, cmd, stdout, stderr)
		},
	}
}

func action(_ context.Context, cmd *cli.Command, stdout, _ io.Writer) error {
	implementations := clientinfo.ProductionClients()
	if cmd.Bool("include-dev") {
		implementations = append(implementations, clientinfo.DevTools()...)
	}

	writer, termWidth, closeOutput, err := helper.OpenOutput(cmd, stdout)
	if err != nil {
		return err
	}
	if closeOutput != nil {
		defer closeOutput()
	}

	if err := output.PrintClients(implementations, cmd.String("format"), writer, termWidth); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
