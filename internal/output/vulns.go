package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/smolgroot/rpc-fingerprint/internal/vulndb"
)

// PrintRecords writes vulnerability records in the given format.
func PrintRecords(records []vulndb.Record, db *vulndb.Database, format string, outputWriter io.Writer, terminalWidth int) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(outputWriter)
		encoder.SetIndent("", "  ")

		return encoder.Encode(records)
	case "yaml":
		return yaml.NewEncoder(outputWriter, yaml.Indent(2)).Encode(records)
	case "table":
		PrintVulnerabilityTable(records, db, outputWriter, terminalWidth)

		return nil
	}

	return fmt.Errorf("unsupported output format \"%s\"", format)
}

// PrintSearchResults writes search matches in the given format,
// including which software each record was found under.
func PrintSearchResults(matches []vulndb.SearchMatch, db *vulndb.Database, format string, outputWriter io.Writer, terminalWidth int) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(outputWriter)
		encoder.SetIndent("", "  ")

		return encoder.Encode(matches)
	case "yaml":
		return yaml.NewEncoder(outputWriter, yaml.Indent(2)).Encode(matches)
	case "table":
		if terminalWidth <= 0 {
			text.DisableColors()
		}

		outputTable := newTable(outputWriter, terminalWidth)
		outputTable.AppendHeader(table.Row{"Software", "ID", "Severity", "CVSS", "Title"})
		for _, match := range matches {
			outputTable.AppendRow(table.Row{
				match.Software,
				match.Record.ID,
				colorizeRating(match.Record.Severity, db),
				fmt.Sprintf("%.1f", match.Record.CVSSScore),
				match.Record.Title,
			})
		}
		if outputTable.Length() != 0 {
			outputTable.Render()
		}

		return nil
	}

	return fmt.Errorf("unsupported output format \"%s\"", format)
}

// SoftwareCount pairs a catalog software name with its record count.
type SoftwareCount struct {
	Name    string `json:"name" yaml:"name"`
	Records int    `json:"records" yaml:"records"`
}

// CatalogSummary describes the loaded vulnerability database.
type CatalogSummary struct {
	Metadata     map[string]any  `json:"metadata" yaml:"metadata"`
	Software     []SoftwareCount `json:"software" yaml:"software"`
	TotalRecords int             `json:"total_records" yaml:"total_records"`
}

// Summarize builds a summary of the loaded database.
func Summarize(db *vulndb.Database) CatalogSummary {
	summary := CatalogSummary{
		Metadata:     db.Metadata(),
		TotalRecords: db.TotalRecords(),
	}
	for _, name := range db.Software() {
		summary.Software = append(summary.Software, SoftwareCount{
			Name:    name,
			Records: len(db.AllForSoftware(name)),
		})
	}

	return summary
}

// PrintCatalogSummary writes a database summary in the given format.
func PrintCatalogSummary(db *vulndb.Database, format string, outputWriter io.Writer, terminalWidth int) error {
	summary := Summarize(db)

	switch format {
	case "json":
		encoder := json.NewEncoder(outputWriter)
		encoder.SetIndent("", "  ")

		return encoder.Encode(summary)
	case "yaml":
		return yaml.NewEncoder(outputWriter, yaml.Indent(2)).Encode(summary)
	case "table":
		if terminalWidth <= 0 {
			text.DisableColors()
		}

		outputTable := newTable(outputWriter, terminalWidth)
		outputTable.AppendHeader(table.Row{"Software", "Records"})
		for _, software := range summary.Software {
			outputTable.AppendRow(table.Row{software.Name, software.Records})
		}
		outputTable.AppendFooter(table.Row{"Total", summary.TotalRecords})
		outputTable.Render()

		return nil
	}

	return fmt.Errorf("unsupported output format \"%s\"", format)
}
