// Package vulndb loads the vulnerability catalog and matches client
// versions against it.
package vulndb

import (
	"slices"

	"github.com/smolgroot/rpc-fingerprint/internal/semantic"
	"github.com/smolgroot/rpc-fingerprint/internal/severity"
)

// Record is a single vulnerability advisory. Records are validated at
// load time and immutable afterwards.
type Record struct {
	ID             string          `json:"cve_id" yaml:"cve_id"`
	Title          string          `json:"title" yaml:"title"`
	Description    string          `json:"description" yaml:"description"`
	Severity       severity.Rating `json:"severity" yaml:"severity"`
	CVSSScore      float64         `json:"cvss_score" yaml:"cvss_score"`
	CVSSVector     string          `json:"cvss_vector,omitempty" yaml:"cvss_vector,omitempty"`
	Affected       VersionSpec     `json:"affected_versions" yaml:"affected_versions"`
	FixedIn        string          `json:"fixed_in" yaml:"fixed_in"`
	PublishedDate  string          `json:"published_date" yaml:"published_date"`
	References     []string        `json:"references" yaml:"references"`
	Impact         string          `json:"impact" yaml:"impact"`
	Recommendation string          `json:"recommendation" yaml:"recommendation"`
}

// VersionSpec determines which versions a vulnerability record applies
// to. The concrete type is decided once, when the catalog is loaded.
type VersionSpec interface {
	// Matches reports whether the given raw version string falls
	// within the spec. Callers are expected to have already checked
	// that the raw string normalizes; see Database.Vulnerabilities.
	Matches(raw string) bool
}

// VersionRange matches versions between optional inclusive bounds,
// minus an exact-string exclude list.
type VersionRange struct {
	Min     string   `json:"min,omitempty" yaml:"min,omitempty"`
	Max     string   `json:"max,omitempty" yaml:"max,omitempty"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

func (r VersionRange) Matches(raw string) bool {
	// exclusion is on the raw string, before any normalization
	if slices.Contains(r.Exclude, raw) {
		return false
	}

	v, err := semantic.Parse(raw)
	if err != nil {
		return false
	}

	// a bound that fails to normalize imposes no constraint on its side
	if r.Min != "" {
		if minimum, err := semantic.Parse(r.Min); err == nil && v.Compare(minimum) < 0 {
			return false
		}
	}
	if r.Max != "" {
		if maximum, err := semantic.Parse(r.Max); err == nil && v.Compare(maximum) > 0 {
			return false
		}
	}

	return true
}

// ExactVersions matches only the exact raw version strings listed.
type ExactVersions struct {
	Versions []string `json:"versions" yaml:"versions"`
}

func (e ExactVersions) Matches(raw string) bool {
	return slices.Contains(e.Versions, raw)
}

// SeverityInfo holds the display attributes the catalog assigns to a
// severity level.
type SeverityInfo struct {
	Color       string    `json:"color" yaml:"color"`
	ScoreRange  []float64 `json:"score_range" yaml:"score_range"`
	Priority    string    `json:"priority" yaml:"priority"`
	Description string    `json:"description" yaml:"description"`
}
