package vulndb

import (
	"cmp"
	"slices"
	"strings"

	"github.com/smolgroot/rpc-fingerprint/internal/identifiers"
	"github.com/smolgroot/rpc-fingerprint/internal/semantic"
	"github.com/smolgroot/rpc-fingerprint/internal/severity"
)

// aliases folds historical and alternate project names onto the
// catalog key their records live under. OpenEthereum is the renamed
// successor to Parity, so both resolve to parity.
var aliases = map[string]string{
	"go-ethereum":         "geth",
	"turbogeth":           "geth",
	"parity-ethereum":     "parity",
	"openethereum":        "parity",
	"parity/openethereum": "parity",
	"hyperledger_besu":    "besu",
	"hyperledger-besu":    "besu",
}

func canonicalName(software string) string {
	lower := strings.ToLower(software)
	if canonical, ok := aliases[lower]; ok {
		return canonical
	}

	return lower
}

// Vulnerabilities returns the records affecting the given software at
// the given version, ordered by severity (most severe first) with CVSS
// score and then advisory ID as tie-breaks.
//
// Unknown software and versions that cannot be normalized both yield
// an empty result: "cannot assess" is not "vulnerable".
func (db *Database) Vulnerabilities(software, version string) []Record {
	candidates := db.records[canonicalName(software)]
	if len(candidates) == 0 {
		return nil
	}

	if _, err := semantic.Parse(version); err != nil {
		return nil
	}

	var matched []Record
	for _, record := range candidates {
		if record.Affected.Matches(version) {
			matched = append(matched, record)
		}
	}

	sortRecords(matched)

	return matched
}

// AllForSoftware returns every record for a software, regardless of
// version.
func (db *Database) AllForSoftware(software string) []Record {
	records := slices.Clone(db.records[canonicalName(software)])
	sortRecords(records)

	return records
}

// SearchMatch pairs a record with the software it was found under.
type SearchMatch struct {
	Software string `json:"software" yaml:"software"`
	Record   Record `json:"record" yaml:"record"`
}

// Search finds records whose ID, title, or description contains the
// given term, case-insensitively.
func (db *Database) Search(term string) []SearchMatch {
	lower := strings.ToLower(term)

	var matches []SearchMatch
	for _, software := range db.Software() {
		for _, record := range db.records[software] {
			if strings.Contains(strings.ToLower(record.ID), lower) ||
				strings.Contains(strings.ToLower(record.Title), lower) ||
				strings.Contains(strings.ToLower(record.Description), lower) {
				matches = append(matches, SearchMatch{Software: software, Record: record})
			}
		}
	}

	return matches
}

func sortRecords(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		if diff := cmp.Compare(severity.Rank(a.Severity), severity.Rank(b.Severity)); diff != 0 {
			return diff
		}
		// higher CVSS first within a severity level
		if diff := cmp.Compare(b.CVSSScore, a.CVSSScore); diff != 0 {
			return diff
		}

		return identifiers.SortFunc(a.ID, b.ID)
	})
}
