package output

import (
	"encoding/json"
	"io"

	"github.com/smolgroot/rpc-fingerprint/internal/fingerprint"
)

// PrintJSONResults writes fingerprint results as indented JSON.
func PrintJSONResults(results []fingerprint.Result, outputWriter io.Writer) error {
	encoder := json.NewEncoder(outputWriter)
	encoder.SetIndent("", "  ")

	return encoder.Encode(results)
}
