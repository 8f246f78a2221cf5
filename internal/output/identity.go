package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/smolgroot/rpc-fingerprint/internal/clientinfo"
)

// PrintIdentity writes a parsed client identity in the given format.
func PrintIdentity(identity clientinfo.Identity, format string, outputWriter io.Writer, terminalWidth int) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(outputWriter)
		encoder.SetIndent("", "  ")

		return encoder.Encode(identity)
	case "yaml":
		return yaml.NewEncoder(outputWriter, yaml.Indent(2)).Encode(identity)
	case "table":
		PrintIdentityTable(identity, outputWriter, terminalWidth)

		return nil
	}

	return fmt.Errorf("unsupported output format \"%s\"", format)
}
