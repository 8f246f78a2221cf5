package vulndb

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/smolgroot/rpc-fingerprint/internal/severity"
)

func recordIDs(records []Record) []string {
	if len(records) == 0 {
		return nil
	}

	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}

	return ids
}

func TestDatabase_Vulnerabilities(t *testing.T) {
	t.Parallel()

	db := LoadDefault()

	type args struct {
		software string
		version  string
	}
	tests := []struct {
		name string
		args args
		want []string
	}{
		{
			name: "geth in both ranges, most severe first",
			args: args{software: "geth", version: "1.10.3"},
			want: []string{"CVE-2021-39137", "CVE-2021-41173"},
		},
		{
			name: "geth above the critical range",
			args: args{software: "geth", version: "1.10.8"},
			want: []string{"CVE-2021-41173"},
		},
		{
			name: "geth suffix is stripped before matching",
			args: args{software: "geth", version: "v1.10.3-stable"},
			want: []string{"CVE-2021-39137", "CVE-2021-41173"},
		},
		{
			name: "geth fully patched",
			args: args{software: "geth", version: "1.10.11"},
			want: nil,
		},
		{
			name: "software name is case-insensitive",
			args: args{software: "Geth", version: "1.10.3"},
			want: []string{"CVE-2021-39137", "CVE-2021-41173"},
		},
		{
			name: "go-ethereum aliases to geth",
			args: args{software: "go-ethereum", version: "1.10.3"},
			want: []string{"CVE-2021-39137", "CVE-2021-41173"},
		},
		{
			name: "openethereum aliases to parity",
			args: args{software: "OpenEthereum", version: "2.2.0"},
			want: []string{"CVE-2018-19486"},
		},
		{
			name: "besu max-only range has no lower bound",
			args: args{software: "besu", version: "0.0.1"},
			want: []string{"CVE-2022-36025"},
		},
		{
			name: "unknown software",
			args: args{software: "reth", version: "1.0.0"},
			want: nil,
		},
		{
			name: "unparsable version",
			args: args{software: "geth", version: "not-a-version"},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := db.Vulnerabilities(tt.args.software, tt.args.version)
			if diff := cmp.Diff(tt.want, recordIDs(got)); diff != "" {
				t.Errorf("Vulnerabilities(%q, %q) diff (-want +got):\n%s", tt.args.software, tt.args.version, diff)
			}
		})
	}
}

func TestDatabase_Vulnerabilities_ExcludeList(t *testing.T) {
	t.Parallel()

	catalog := []byte(`{
		"vulnerabilities": {
			"geth": [
				{
					"cve_id": "CVE-2000-0001",
					"severity": "HIGH",
					"cvss_score": 7.5,
					"affected_versions": {
						"type": "range",
						"min": "1.0.0",
						"max": "1.1.0",
						"exclude": ["1.0.5"]
					}
				}
			]
		}
	}`)

	db, err := Parse(catalog)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	if got := db.Vulnerabilities("geth", "1.0.4"); len(got) != 1 {
		t.Errorf("Vulnerabilities(1.0.4) = %v, want one record", recordIDs(got))
	}
	if got := db.Vulnerabilities("geth", "1.0.5"); len(got) != 0 {
		t.Errorf("Vulnerabilities(1.0.5) = %v, want none", recordIDs(got))
	}
	// the exclude list matches the raw string, not the normalized one
	if got := db.Vulnerabilities("geth", "v1.0.5"); len(got) != 1 {
		t.Errorf("Vulnerabilities(v1.0.5) = %v, want one record", recordIDs(got))
	}
}

func TestDatabase_Vulnerabilities_ExactVersions(t *testing.T) {
	t.Parallel()

	catalog := []byte(`{
		"vulnerabilities": {
			"geth": [
				{
					"cve_id": "CVE-2000-0001",
					"severity": "LOW",
					"cvss_score": 2.0,
					"affected_versions": {
						"type": "exact",
						"versions": ["1.0.0", "1.0.2"]
					}
				}
			]
		}
	}`)

	db, err := Parse(catalog)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	if got := db.Vulnerabilities("geth", "1.0.2"); len(got) != 1 {
		t.Errorf("Vulnerabilities(1.0.2) = %v, want one record", recordIDs(got))
	}
	if got := db.Vulnerabilities("geth", "1.0.1"); len(got) != 0 {
		t.Errorf("Vulnerabilities(1.0.1) = %v, want none", recordIDs(got))
	}
}

func TestDatabase_Vulnerabilities_Ordering(t *testing.T) {
	t.Parallel()

	catalog := []byte(`{
		"vulnerabilities": {
			"geth": [
				{
					"cve_id": "CVE-2000-0001",
					"severity": "LOW",
					"cvss_score": 2.0,
					"affected_versions": {"type": "range", "min": "1.0.0", "max": "2.0.0"}
				},
				{
					"cve_id": "CVE-2000-0002",
					"severity": "HIGH",
					"cvss_score": 7.1,
					"affected_versions": {"type": "range", "min": "1.0.0", "max": "2.0.0"}
				},
				{
					"cve_id": "CVE-2000-0003",
					"severity": "HIGH",
					"cvss_score": 8.2,
					"affected_versions": {"type": "range", "min": "1.0.0", "max": "2.0.0"}
				},
				{
					"cve_id": "CVE-2000-0004",
					"severity": "CRITICAL",
					"cvss_score": 9.1,
					"affected_versions": {"type": "range", "min": "1.0.0", "max": "2.0.0"}
				}
			]
		}
	}`)

	db, err := Parse(catalog)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	want := []string{"CVE-2000-0004", "CVE-2000-0003", "CVE-2000-0002", "CVE-2000-0001"}
	got := db.Vulnerabilities("geth", "1.5.0")
	if diff := cmp.Diff(want, recordIDs(got)); diff != "" {
		t.Errorf("Vulnerabilities() order diff (-want +got):\n%s", diff)
	}
}

func TestDatabase_Search(t *testing.T) {
	t.Parallel()

	db := LoadDefault()

	matches := db.Search("consensus")
	if len(matches) == 0 {
		t.Fatal("Search(consensus) returned no matches")
	}
	for _, match := range matches {
		if match.Software == "" || match.Record.ID == "" {
			t.Errorf("Search() returned incomplete match: %+v", match)
		}
	}

	if got := db.Search("CVE-2021-39137"); len(got) != 1 {
		t.Errorf("Search(CVE-2021-39137) = %d matches, want 1", len(got))
	}

	if got := db.Search("definitely-not-in-the-catalog"); len(got) != 0 {
		t.Errorf("Search(miss) = %d matches, want 0", len(got))
	}
}

func TestOverallRisk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		records []Record
		want    severity.Rating
	}{
		{
			name:    "no records",
			records: nil,
			want:    severity.NoneRating,
		},
		{
			name: "single low",
			records: []Record{
				{Severity: severity.LowRating},
			},
			want: severity.LowRating,
		},
		{
			name: "most severe wins",
			records: []Record{
				{Severity: severity.MediumRating},
				{Severity: severity.CriticalRating},
				{Severity: severity.HighRating},
			},
			want: severity.CriticalRating,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := OverallRisk(tt.records); got != tt.want {
				t.Errorf("OverallRisk() = %v, want %v", got, tt.want)
			}
		})
	}
}
