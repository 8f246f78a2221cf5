// Package fingerprint runs the identify-parse-match pipeline against
// remote JSON-RPC endpoints.
package fingerprint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/smolgroot/rpc-fingerprint/internal/clientinfo"
	"github.com/smolgroot/rpc-fingerprint/internal/cmdlogger"
	"github.com/smolgroot/rpc-fingerprint/internal/ethrpc"
	"github.com/smolgroot/rpc-fingerprint/internal/severity"
	"github.com/smolgroot/rpc-fingerprint/internal/vulndb"
)

// ErrVulnerabilitiesFound is returned by the scan command when at
// least one endpoint matched a vulnerability record, so the process
// can exit non-zero.
var ErrVulnerabilitiesFound = errors.New("vulnerabilities found")

type Fingerprinter struct {
	DB            *vulndb.Database
	Timeout       time.Duration
	MaxConcurrent int
	UserAgent     string

	// ShouldIgnore optionally filters matched records by advisory ID,
	// returning the configured reason. Ignored records are dropped
	// before the risk level is computed.
	ShouldIgnore func(id string) (bool, string)
}

// Fingerprint probes a single endpoint. It never returns an error:
// per-probe failures are recorded on the result, and an endpoint that
// cannot even report its client version yields a result containing
// only that error.
func (f *Fingerprinter) Fingerprint(ctx context.Context, endpoint string) Result {
	result := Result{Endpoint: endpoint, RiskLevel: severity.NoneRating}

	client := ethrpc.NewClient(endpoint, f.Timeout)
	client.UserAgent = f.UserAgent

	start := time.Now()
	clientVersion, err := client.ClientVersion(ctx)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to get client version: %v", err))

		return result
	}
	result.ResponseTime = time.Since(start).Seconds()

	result.ClientVersion = clientVersion
	result.Identity = clientinfo.Parse(clientVersion)

	f.probeMetrics(ctx, client, &result)
	f.matchVulnerabilities(&result)

	return result
}

// FingerprintAll probes the given endpoints with bounded concurrency.
// Results are returned in input order, one per endpoint; a failing
// endpoint produces a result carrying its errors rather than aborting
// the batch.
func (f *Fingerprinter) FingerprintAll(ctx context.Context, endpoints []string) []Result {
	results := make([]Result, len(endpoints))

	g := &errgroup.Group{}
	g.SetLimit(max(f.MaxConcurrent, 1))

	for i, endpoint := range endpoints {
		g.Go(func() error {
			results[i] = f.Fingerprint(ctx, endpoint)

			return nil
		})
	}

	// the per-endpoint goroutines never return an error
	_ = g.Wait()

	return results
}

func (f *Fingerprinter) probeMetrics(ctx context.Context, client *ethrpc.Client, result *Result) {
	record := func(name string, err error) {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to get %s: %v", name, err))
	}

	if v, err := client.NetworkID(ctx); err != nil {
		record("network ID", err)
	} else {
		result.NetworkID = &v
	}
	if v, err := client.ChainID(ctx); err != nil {
		record("chain ID", err)
	} else {
		result.ChainID = &v
	}
	if v, err := client.BlockNumber(ctx); err != nil {
		record("block number", err)
	} else {
		result.BlockNumber = &v
	}
	if v, err := client.GasPrice(ctx); err != nil {
		record("gas price", err)
	} else {
		result.GasPrice = &v
	}
	if v, err := client.PeerCount(ctx); err != nil {
		record("peer count", err)
	} else {
		result.PeerCount = &v
	}
	if v, err := client.Syncing(ctx); err != nil {
		record("syncing status", err)
	} else {
		result.Syncing = &v
	}
	if v, err := client.Mining(ctx); err != nil {
		record("mining status", err)
	} else {
		result.Mining = &v
	}
}

func (f *Fingerprinter) matchVulnerabilities(result *Result) {
	if f.DB == nil || result.Identity.Version == "" {
		return
	}

	matched := f.DB.Vulnerabilities(result.Identity.Implementation.String(), result.Identity.Version)

	if f.ShouldIgnore != nil {
		filtered := matched[:0]
		for _, record := range matched {
			if ignore, reason := f.ShouldIgnore(record.ID); ignore {
				cmdlogger.Infof("%s has been filtered out because: %s", record.ID, reason)
				continue
			}
			filtered = append(filtered, record)
		}
		matched = filtered
	}

	result.Vulnerabilities = matched
	result.RiskLevel = vulndb.OverallRisk(matched)
}
