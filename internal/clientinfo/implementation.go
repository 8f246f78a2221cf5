// Package clientinfo classifies and parses the identification strings
// that Ethereum nodes report via web3_clientVersion.
package clientinfo

import (
	"slices"
	"strings"
)

// Implementation identifies a known Ethereum client implementation.
type Implementation int

const (
	// None means there was no identification string to classify.
	None Implementation = iota
	Unknown
	Geth
	ParityOpenEthereum
	Besu
	Nethermind
	Erigon
	Reth
	Anvil
	Hardhat
	Ganache
	EthereumJS
)

var displayNames = map[Implementation]string{
	Unknown:            "Unknown",
	Geth:               "Geth",
	ParityOpenEthereum: "Parity/OpenEthereum",
	Besu:               "Besu",
	Nethermind:         "Nethermind",
	Erigon:             "Erigon",
	Reth:               "Reth",
	Anvil:              "Anvil",
	Hardhat:            "Hardhat",
	Ganache:            "Ganache",
	EthereumJS:         "EthereumJS",
}

func (i Implementation) String() string {
	return displayNames[i]
}

func (i Implementation) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// Language returns the language the implementation is written in, or
// empty when that is not a fixed fact (None, Unknown).
func (i Implementation) Language() string {
	switch i {
	case Geth, Erigon:
		return "Go"
	case ParityOpenEthereum, Reth, Anvil:
		return "Rust"
	case Besu:
		return "Java"
	case Nethermind:
		return ".NET"
	case Hardhat:
		return "JavaScript/TypeScript"
	case Ganache:
		return "JavaScript"
	case EthereumJS:
		return "TypeScript"
	}

	return ""
}

var productionClients = []Implementation{
	Geth,
	ParityOpenEthereum,
	Besu,
	Nethermind,
	Erigon,
	Reth,
}

var devTools = []Implementation{
	Anvil,
	Hardhat,
	Ganache,
	EthereumJS,
}

// ProductionClients returns the implementations intended to run
// production nodes, in display order.
func ProductionClients() []Implementation {
	return slices.Clone(productionClients)
}

// DevTools returns the implementations that are local development
// tools rather than production clients, in display order.
func DevTools() []Implementation {
	return slices.Clone(devTools)
}

// IsDevTool reports whether the implementation is a local development
// tool.
func (i Implementation) IsDevTool() bool {
	return slices.Contains(devTools, i)
}

// signatures are checked in order: "turbogeth" would otherwise fall
// through to Unknown, and Hardhat identity strings embed "@ethereumjs"
// so Hardhat must be tested before EthereumJS.
var signatures = []struct {
	substring      string
	implementation Implementation
}{
	{"turbogeth", Geth},
	{"geth", Geth},
	{"openethereum", ParityOpenEthereum},
	{"parity", ParityOpenEthereum},
	{"besu", Besu},
	{"nethermind", Nethermind},
	{"erigon", Erigon},
	{"anvil", Anvil},
	{"hardhat", Hardhat},
	{"ganache", Ganache},
	{"reth", Reth},
	{"ethereumjs", EthereumJS},
}

// Classify maps a raw identification string to an implementation using
// case-insensitive substring matching. It returns None for empty or
// whitespace-only input and Unknown when no signature matches.
func Classify(raw string) Implementation {
	if strings.TrimSpace(raw) == "" {
		return None
	}

	lower := strings.ToLower(raw)
	for _, sig := range signatures {
		if strings.Contains(lower, sig.substring) {
			return sig.implementation
		}
	}

	return Unknown
}
