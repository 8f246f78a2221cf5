// Package vulns implements the `vulns` command, which queries the
// vulnerability database without contacting any node.
package vulns

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/smolgroot/rpc-fingerprint/cmd/rpc-fingerprint/internal/helper"
	"github.com/smolgroot/rpc-fingerprint/internal/output"
)

func Command(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:        "vulns",
		Usage:       "queries the vulnerability database by software, version, or search term",
		Description: "queries the vulnerability database by software, version, or search term",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "search",
				Usage: "find records whose ID, title, or description contains this term",
			},
		}, helper.GetGlobalFlags()...),
		ArgsUsage: "[software] [version]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return action(ctx, cmd, stdout, stderr)
		},
	}
}

func action(_ context.Context, cmd *cli.Command, stdout, _ io.Writer) error {
	conf, err := helper.LoadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := helper.LoadDatabase(cmd, conf)
	if err != nil {
		return err
	}

	writer, termWidth, closeOutput, err := helper.OpenOutput(cmd, stdout)
	if err != nil {
		return err
	}
	if closeOutput != nil {
		defer closeOutput()
	}

	format := cmd.String("format")

	if term := cmd.String("search"); term != "" {
		matches := db.Search(term)
		if err := output.PrintSearchResults(matches, db, format, writer, termWidth); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		return nil
	}

	switch cmd.Args().Len() {
	case 0:
		err = output.PrintCatalogSummary(db, format, writer, termWidth)
	case 1:
		err = output.PrintRecords(db.AllForSoftware(cmd.Args().First()), db, format, writer, termWidth)
	default:
		software, version := cmd.Args().Get(0), cmd.Args().Get(1)
		err = output.PrintRecords(db.Vulnerabilities(software, version), db, format, writer, termWidth)
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
