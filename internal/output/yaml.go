package output

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/smolgroot/rpc-fingerprint/internal/fingerprint"
)

// PrintYAMLResults writes fingerprint results as YAML.
func PrintYAMLResults(results []fingerprint.Result, outputWriter io.Writer) error {
	encoder := yaml.NewEncoder(outputWriter, yaml.Indent(2))

	return encoder.Encode(results)
}
