package vulndb

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/smolgroot/rpc-fingerprint/internal/cmdlogger"
	"github.com/smolgroot/rpc-fingerprint/internal/severity"
)

//go:embed database.json
var defaultCatalog []byte

// Database is an immutable catalog of vulnerability records keyed by
// canonical software name. It is built once and is safe to share
// across concurrent matching calls without synchronization.
type Database struct {
	records    map[string][]Record
	severities map[severity.Rating]SeverityInfo
	metadata   map[string]any
}

type rawCatalog struct {
	Metadata        map[string]any                   `json:"metadata"`
	SeverityMapping map[severity.Rating]SeverityInfo `json:"severity_mapping"`
	Vulnerabilities map[string][]rawRecord           `json:"vulnerabilities"`
}

type rawRecord struct {
	CVEID          string      `json:"cve_id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Severity       string      `json:"severity"`
	CVSSScore      *float64    `json:"cvss_score"`
	CVSSVector     string      `json:"cvss_vector"`
	Affected       rawAffected `json:"affected_versions"`
	FixedIn        string      `json:"fixed_in"`
	PublishedDate  string      `json:"published_date"`
	References     []string    `json:"references"`
	Impact         string      `json:"impact"`
	Recommendation string      `json:"recommendation"`
}

type rawAffected struct {
	Type     string   `json:"type"`
	Min      string   `json:"min"`
	Max      string   `json:"max"`
	Exclude  []string `json:"exclude"`
	Versions []string `json:"versions"`
}

func empty() *Database {
	return &Database{
		records:    map[string][]Record{},
		severities: map[severity.Rating]SeverityInfo{},
		metadata:   map[string]any{},
	}
}

// Load builds a database from a catalog file. Individual malformed
// records are skipped with a warning; only an unreadable file or an
// unparsable document is an error, and even then the returned database
// is empty but usable.
func Load(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return empty(), fmt.Errorf("reading vulnerability database: %w", err)
	}

	return Parse(data)
}

// LoadDefault builds the database embedded in the binary.
func LoadDefault() *Database {
	db, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded vulnerability database is invalid: %v", err))
	}

	return db
}

// Parse builds a database from raw catalog JSON.
func Parse(data []byte) (*Database, error) {
	var catalog rawCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return empty(), fmt.Errorf("parsing vulnerability database: %w", err)
	}

	db := empty()
	if catalog.Metadata != nil {
		db.metadata = catalog.Metadata
	}
	for rating, info := range catalog.SeverityMapping {
		db.severities[rating] = info
	}

	for software, entries := range catalog.Vulnerabilities {
		key := canonicalName(software)
		for _, entry := range entries {
			record, err := buildRecord(entry)
			if err != nil {
				cmdlogger.Warnf("Skipping malformed vulnerability in %s: %v", software, err)
				continue
			}
			db.records[key] = append(db.records[key], record)
		}
	}

	return db, nil
}

func buildRecord(entry rawRecord) (Record, error) {
	if entry.CVEID == "" {
		return Record{}, fmt.Errorf("missing cve_id")
	}

	rating := severity.Rating(entry.Severity)
	if !severity.IsValid(rating) {
		return Record{}, fmt.Errorf("%s: invalid severity %q", entry.CVEID, entry.Severity)
	}

	var score float64
	switch {
	case entry.CVSSScore != nil:
		score = *entry.CVSSScore
	case entry.CVSSVector != "":
		derived, _, err := severity.CalculateScore(entry.CVSSVector)
		if err != nil {
			return Record{}, fmt.Errorf("%s: invalid cvss_vector: %w", entry.CVEID, err)
		}
		score = derived
	default:
		return Record{}, fmt.Errorf("%s: missing cvss_score", entry.CVEID)
	}
	if score < 0.0 || score > 10.0 {
		return Record{}, fmt.Errorf("%s: cvss_score %v out of range", entry.CVEID, score)
	}

	spec, err := buildVersionSpec(entry.Affected)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", entry.CVEID, err)
	}

	return Record{
		ID:             entry.CVEID,
		Title:          entry.Title,
		Description:    entry.Description,
		Severity:       rating,
		CVSSScore:      score,
		CVSSVector:     entry.CVSSVector,
		Affected:       spec,
		FixedIn:        entry.FixedIn,
		PublishedDate:  entry.PublishedDate,
		References:     entry.References,
		Impact:         entry.Impact,
		Recommendation: entry.Recommendation,
	}, nil
}

func buildVersionSpec(affected rawAffected) (VersionSpec, error) {
	switch affected.Type {
	// the original catalogs treat a missing type as a range
	case "range", "":
		return VersionRange{Min: affected.Min, Max: affected.Max, Exclude: affected.Exclude}, nil
	case "exact":
		return ExactVersions{Versions: affected.Versions}, nil
	}

	return nil, fmt.Errorf("unknown affected_versions type %q", affected.Type)
}

// SeverityInfo returns the catalog's display attributes for a severity
// level, falling back to neutral defaults for levels the catalog does
// not describe.
func (db *Database) SeverityInfo(rating severity.Rating) SeverityInfo {
	if info, ok := db.severities[rating]; ok {
		return info
	}

	return SeverityInfo{
		Color:       "white",
		ScoreRange:  []float64{0.0, 10.0},
		Priority:    "UNKNOWN",
		Description: "Unknown severity level",
	}
}

// Metadata returns the catalog's free-form provenance information.
func (db *Database) Metadata() map[string]any {
	return db.metadata
}

// Software lists the canonical software names with at least one record.
func (db *Database) Software() []string {
	names := make([]string, 0, len(db.records))
	for name := range db.records {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// TotalRecords counts the records across all software.
func (db *Database) TotalRecords() int {
	total := 0
	for _, records := range db.records {
		total += len(records)
	}

	return total
}
