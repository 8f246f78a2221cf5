package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/smolgroot/rpc-fingerprint/internal/clientinfo"
	"github.com/smolgroot/rpc-fingerprint/internal/fingerprint"
	"github.com/smolgroot/rpc-fingerprint/internal/severity"
	"github.com/smolgroot/rpc-fingerprint/internal/vulndb"
)

// PrintTableResults prints fingerprint results as human-readable tables.
func PrintTableResults(results []fingerprint.Result, db *vulndb.Database, outputWriter io.Writer, terminalWidth int) {
	if terminalWidth <= 0 {
		text.DisableColors()
	}

	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(outputWriter)
		}
		printResult(result, db, outputWriter, terminalWidth)
	}
}

func printResult(result fingerprint.Result, db *vulndb.Database, outputWriter io.Writer, terminalWidth int) {
	fmt.Fprintf(outputWriter, "Endpoint: %s\n", result.Endpoint)

	for _, probeErr := range result.Errors {
		fmt.Fprintf(outputWriter, "  error: %s\n", probeErr)
	}

	propertyTable := newTable(outputWriter, terminalWidth)
	propertyTable.AppendHeader(table.Row{"Property", "Value"})
	for _, row := range resultRows(result) {
		propertyTable.AppendRow(row)
	}
	if propertyTable.Length() != 0 {
		propertyTable.Render()
	}

	if len(result.Identity.BuildMetadata) > 0 {
		buildTable := newTable(outputWriter, terminalWidth)
		buildTable.AppendHeader(table.Row{"Build Property", "Value"})
		for _, field := range result.Identity.BuildMetadata {
			buildTable.AppendRow(table.Row{titleKey(field.Key), field.Value})
		}
		buildTable.Render()
	}

	if len(result.Vulnerabilities) > 0 {
		fmt.Fprintf(outputWriter, "Known vulnerabilities (risk level %s):\n", colorizeRating(result.RiskLevel, db))
		vulnTable := newTable(outputWriter, terminalWidth)
		appendVulnRows(vulnTable, result.Vulnerabilities, db)
		vulnTable.Render()
	} else if result.Identity.Version != "" {
		fmt.Fprintf(outputWriter, "No known vulnerabilities (risk level %s)\n", colorizeRating(result.RiskLevel, db))
	}
}

func resultRows(result fingerprint.Result) []table.Row {
	identity := result.Identity

	rows := []table.Row{}
	appendString := func(name, value string) {
		if value != "" {
			rows = append(rows, table.Row{name, value})
		}
	}
	appendUint := func(name string, value *uint64) {
		if value != nil {
			rows = append(rows, table.Row{name, fmt.Sprintf("%d", *value)})
		}
	}
	appendBool := func(name string, value *bool) {
		if value != nil {
			rows = append(rows, table.Row{name, fmt.Sprintf("%t", *value)})
		}
	}

	appendString("Client Version", result.ClientVersion)
	if identity.Implementation != clientinfo.None {
		appendString("Implementation", identity.Implementation.String())
	}
	appendString("Version", identity.Version)
	appendString("Language", identity.Language)
	appendString("Language Version", identity.LanguageVersion)
	appendString("Operating System", identity.OS)
	appendString("Architecture", identity.Architecture)

	appendUint("Network ID", result.NetworkID)
	appendUint("Chain ID", result.ChainID)
	appendUint("Block Number", result.BlockNumber)
	appendUint("Gas Price (wei)", result.GasPrice)
	appendUint("Peer Count", result.PeerCount)
	appendBool("Syncing", result.Syncing)
	appendBool("Mining", result.Mining)

	if result.ResponseTime > 0 {
		rows = append(rows, table.Row{"Response Time", fmt.Sprintf("%.3fs", result.ResponseTime)})
	}

	return rows
}

// PrintVulnerabilityTable prints catalog records for one piece of
// software.
func PrintVulnerabilityTable(records []vulndb.Record, db *vulndb.Database, outputWriter io.Writer, terminalWidth int) {
	if terminalWidth <= 0 {
		text.DisableColors()
	}

	outputTable := newTable(outputWriter, terminalWidth)
	appendVulnRows(outputTable, records, db)
	if outputTable.Length() != 0 {
		outputTable.Render()
	}
}

// PrintIdentityTable prints a parsed client identity.
func PrintIdentityTable(identity clientinfo.Identity, outputWriter io.Writer, terminalWidth int) {
	if terminalWidth <= 0 {
		text.DisableColors()
	}

	outputTable := newTable(outputWriter, terminalWidth)
	outputTable.AppendHeader(table.Row{"Property", "Value"})

	valueOrNA := func(value string) string {
		if value == "" {
			return "N/A"
		}

		return value
	}

	implementation := "N/A"
	if identity.Implementation != clientinfo.None {
		implementation = identity.Implementation.String()
	}

	outputTable.AppendRow(table.Row{"Implementation", implementation})
	outputTable.AppendRow(table.Row{"Version", valueOrNA(identity.Version)})
	outputTable.AppendRow(table.Row{"Language", valueOrNA(identity.Language)})
	outputTable.AppendRow(table.Row{"Language Version", valueOrNA(identity.LanguageVersion)})
	outputTable.AppendRow(table.Row{"Operating System", valueOrNA(identity.OS)})
	outputTable.AppendRow(table.Row{"Architecture", valueOrNA(identity.Architecture)})
	for _, field := range identity.BuildMetadata {
		outputTable.AppendRow(table.Row{titleKey(field.Key), field.Value})
	}

	outputTable.Render()
}

func appendVulnRows(outputTable table.Writer, records []vulndb.Record, db *vulndb.Database) {
	outputTable.AppendHeader(table.Row{"ID", "Severity", "CVSS", "Title", "Fixed In"})
	for _, record := range records {
		outputTable.AppendRow(table.Row{
			record.ID,
			colorizeRating(record.Severity, db),
			fmt.Sprintf("%.1f", record.CVSSScore),
			record.Title,
			record.FixedIn,
		})
	}
}

func newTable(outputWriter io.Writer, terminalWidth int) table.Writer {
	outputTable := table.NewWriter()
	outputTable.SetOutputMirror(outputWriter)

	// use fancy characters if we're outputting to a terminal
	if terminalWidth > 0 {
		outputTable.SetStyle(table.StyleRounded)
		outputTable.SetAllowedRowLength(terminalWidth)
	}

	outputTable.Style().Options.DoNotColorBordersAndSeparators = true

	return outputTable
}

func colorizeRating(rating severity.Rating, db *vulndb.Database) string {
	return ratingColors(rating, db).Sprint(string(rating))
}

// ratingColors maps a catalog color name onto terminal colors.
func ratingColors(rating severity.Rating, db *vulndb.Database) text.Colors {
	if db == nil {
		return text.Colors{text.Reset}
	}

	switch db.SeverityInfo(rating).Color {
	case "red":
		return text.Colors{text.FgRed, text.Bold}
	case "yellow":
		return text.Colors{text.FgYellow}
	case "cyan":
		return text.Colors{text.FgCyan}
	case "green":
		return text.Colors{text.FgGreen}
	case "magenta":
		return text.Colors{text.FgMagenta}
	default:
		return text.Colors{text.Reset}
	}
}

// titleKey turns a snake_case metadata key into a display label, e.g.
// "build_timestamp" into "Build Timestamp".
func titleKey(key string) string {
	words := strings.Split(key, "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}

	return strings.Join(words, " ")
}
