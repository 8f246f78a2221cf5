// Package helper provides flags and output plumbing shared by the
// rpc-fingerprint CLI commands.
package helper

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/smolgroot/rpc-fingerprint/internal/cmdlogger"
	"github.com/smolgroot/rpc-fingerprint/internal/config"
	"github.com/smolgroot/rpc-fingerprint/internal/output"
	"github.com/smolgroot/rpc-fingerprint/internal/vulndb"
)

// GetGlobalFlags returns the flags shared by every command that loads
// the vulnerability database and prints results.
func GetGlobalFlags() []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:      "config",
			Usage:     "set/override config file",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:      "database",
			Usage:     "use a vulnerability database file instead of the built-in one",
			TakesFile: true,
		},
	}, GetOutputFlags()...)
}

// GetOutputFlags returns the flags shared by every command that prints
// results.
func GetOutputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "sets the output format; value can be: " + strings.Join(output.Format(), ", "),
			Value:   "table",
			Action: func(_ context.Context, _ *cli.Command, s string) error {
				if slices.Contains(output.Format(), s) {
					if s != "table" {
						cmdlogger.SendEverythingToStderr()
					}

					return nil
				}

				return fmt.Errorf("unsupported output format \"%s\" - must be one of: %s", s, strings.Join(output.Format(), ", "))
			},
		},
		&cli.StringFlag{
			Name:      "output",
			Usage:     "saves the result to the given file path",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:  "verbosity",
			Usage: "specify the level of information that should be provided during runtime; value can be: " + strings.Join(cmdlogger.Levels(), ", "),
			Value: "info",
			Action: func(_ context.Context, _ *cli.Command, s string) error {
				lvl, err := cmdlogger.ParseLevel(s)
				if err != nil {
					return err
				}

				cmdlogger.SetLevel(lvl)

				return nil
			},
		},
	}
}

// LoadConfig loads the config file given by the --config flag, or the
// default config file if the flag is unset.
func LoadConfig(cmd *cli.Command) (config.Config, error) {
	if path := cmd.String("config"); path != "" {
		return config.Load(path)
	}

	return config.TryLoad()
}

// LoadDatabase loads the vulnerability database, preferring the
// --database flag, then the config file, then the built-in catalog.
func LoadDatabase(cmd *cli.Command, conf config.Config) (*vulndb.Database, error) {
	path := cmd.String("database")
	if path == "" {
		path = conf.Database
	}
	if path == "" {
		return vulndb.LoadDefault(), nil
	}

	return vulndb.Load(path)
}

// OpenOutput resolves where results should be written: the --output
// file if one was given, otherwise stdout. The returned width is
// non-zero only when writing to a terminal, and the returned closer is
// nil unless a file was opened.
func OpenOutput(cmd *cli.Command, stdout io.Writer) (io.Writer, int, func() error, error) {
	if outputPath := cmd.String("output"); outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, 0, nil, fmt.Errorf("failed to create output file: %w", err)
		}

		return file, 0, file.Close, nil
	}

	termWidth := 0
	if stdoutAsFile, ok := stdout.(*os.File); ok {
		var err error
		termWidth, _, err = term.GetSize(int(stdoutAsFile.Fd()))
		if err != nil { // If output is not a terminal,
			termWidth = 0
		}
	}

	return stdout, termWidth, nil, nil
}
