package fingerprint

import (
	"github.com/smolgroot/rpc-fingerprint/internal/clientinfo"
	"github.com/smolgroot/rpc-fingerprint/internal/severity"
	"github.com/smolgroot/rpc-fingerprint/internal/vulndb"
)

// Result is everything learned about a single endpoint. Probe failures
// land in Errors rather than aborting the rest of the pipeline, so a
// Result is always produced.
type Result struct {
	Endpoint      string              `json:"endpoint" yaml:"endpoint"`
	ClientVersion string              `json:"client_version,omitempty" yaml:"client_version,omitempty"`
	Identity      clientinfo.Identity `json:"identity" yaml:"identity"`

	NetworkID   *uint64 `json:"network_id,omitempty" yaml:"network_id,omitempty"`
	ChainID     *uint64 `json:"chain_id,omitempty" yaml:"chain_id,omitempty"`
	BlockNumber *uint64 `json:"block_number,omitempty" yaml:"block_number,omitempty"`
	GasPrice    *uint64 `json:"gas_price,omitempty" yaml:"gas_price,omitempty"`
	PeerCount   *uint64 `json:"peer_count,omitempty" yaml:"peer_count,omitempty"`
	Syncing     *bool   `json:"syncing,omitempty" yaml:"syncing,omitempty"`
	Mining      *bool   `json:"mining,omitempty" yaml:"mining,omitempty"`

	// ResponseTime is the time the identification request took, in
	// seconds.
	ResponseTime float64 `json:"response_time,omitempty" yaml:"response_time,omitempty"`

	Vulnerabilities []vulndb.Record `json:"vulnerabilities,omitempty" yaml:"vulnerabilities,omitempty"`
	RiskLevel       severity.Rating `json:"security_risk_level" yaml:"security_risk_level"`

	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// HasVulnerabilities reports whether any result matched at least one
// vulnerability record.
func HasVulnerabilities(results []Result) bool {
	for _, result := range results {
		if len(result.Vulnerabilities) > 0 {
			return true
		}
	}

	return false
}
