// Package parseversion implements the `parse-version` command, which
// parses a client identification string without contacting any node.
package parseversion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/smolgroot/rpc-fingerprint/cmd/rpc-fingerprint/internal/helper"
	"github.com/smolgroot/rpc-fingerprint/internal/clientinfo"
	"github.com/smolgroot/rpc-fingerprint/internal/output"
)

func Command(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:        "parse-version",
		Usage:       "parses a web3_clientVersion string into its implementation, version, and build details",
		Description: "parses a web3_clientVersion string into its implementation, version, and build details",
		Flags:       helper.GetOutputFlags(),
		ArgsUsage:   "<version-string>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return action(ctx, cmd, stdout, stderr)
		},
	}
}

func action(_ context.Context, cmd *cli.Command, stdout, _ io.Writer) error {
	if cmd.Args().Len() == 0 {
		return errors.New("please provide a client version string, or see the help document")
	}

	// Unquoted identification strings contain spaces, so accept the
	// string split across arguments as well.
	raw := strings.Join(cmd.Args().Slice(), " ")
	identity := clientinfo.Parse(raw)

	writer, termWidth, closeOutput, err := helper.OpenOutput(cmd, stdout)
	if err != nil {
		return err
	}
	if closeOutput != nil {
		defer closeOutput()
	}

	if err := output.PrintIdentity(identity, cmd.String("format"), writer, termWidth); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
