package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/smolgroot/rpc-fingerprint/internal/clientinfo"
)

// ClientEntry describes one recognized client implementation.
type ClientEntry struct {
	Name     string `json:"name" yaml:"name"`
	Language string `json:"language" yaml:"language"`
	Type     string `json:"type" yaml:"type"`
}

// PrintClients writes the list of recognized client implementations in
// the given format.
func PrintClients(implementations []clientinfo.Implementation, format string, outputWriter io.Writer, terminalWidth int) error {
	entries := make([]ClientEntry, 0, len(implementations))
	for _, implementation := range implementations {
		entryType := "production"
		if implementation.IsDevTool() {
			entryType = "development tool"
		}
		entries = append(entries, ClientEntry{
			Name:     implementation.String(),
			Language: implementation.Language(),
			Type:     entryType,
		})
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(outputWriter)
		encoder.SetIndent("", "  ")

		return encoder.Encode(entries)
	case "yaml":
		return yaml.NewEncoder(outputWriter, yaml.Indent(2)).Encode(entries)
	case "table":
		if terminalWidth <= 0 {
			text.DisableColors()
		}

		outputTable := newTable(outputWriter, terminalWidth)
		outputTable.AppendHeader(table.Row{"Client", "Language", "Type"})
		for _, entry := range entries {
			outputTable.AppendRow(table.Row{entry.Name, entry.Language, entry.Type})
		}
		outputTable.Render()

		return nil
	}

	return fmt.Errorf("unsupported output format \"%s\"", format)
}
