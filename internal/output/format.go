package output

import (
	"fmt"
	"io"

	"github.com/smolgroot/rpc-fingerprint/internal/fingerprint"
	"github.com/smolgroot/rpc-fingerprint/internal/vulndb"
)

var format = []string{"table", "json", "yaml"}

// Format returns the names of the supported output formats.
func Format() []string {
	return format
}

// PrintResults writes fingerprint results in the given format.
func PrintResults(results []fingerprint.Result, db *vulndb.Database, format string, outputWriter io.Writer, terminalWidth int) error {
	switch format {
	case "json":
		return PrintJSONResults(results, outputWriter)
	case "yaml":
		return PrintYAMLResults(results, outputWriter)
	case "table":
		PrintTableResults(results, db, outputWriter, terminalWidth)

		return nil
	}

	return fmt.Errorf("unsupported output format \"%s\"", format)
}
