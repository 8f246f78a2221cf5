package vulndb

import "github.com/smolgroot/rpc-fingerprint/internal/severity"

// OverallRisk reduces a vulnerability list to the single most severe
// rating present, or NONE for an empty list.
func OverallRisk(records []Record) severity.Rating {
	risk := severity.NoneRating
	for _, record := range records {
		if severity.Rank(record.Severity) < severity.Rank(risk) {
			risk = record.Severity
		}
	}

	return risk
}
