package clientinfo

import (
	"strings"

	"github.com/smolgroot/rpc-fingerprint/internal/cachedregexp"
)

// versionPattern matches a bare or decorated major.minor.patch token,
// e.g. "1.10.26", "v2.7.2-stable" or "1.14.6+6c21356f".
const versionPattern = `v?(\d+\.\d+\.\d+(?:[-+][^\s/]+)?)`

// Parse derives a structured Identity from a raw identification
// string. It never fails: fields that cannot be determined are left
// empty, and an empty or whitespace-only input yields an Identity with
// every field absent.
//
// Known real-world shapes, one extractor per implementation:
//
//	Geth/v1.10.26-stable/linux-amd64/go1.18.5
//	Parity-Ethereum/v2.7.2-stable/x86_64-linux-gnu/rustc1.41.0
//	Besu/v22.10.3/linux-x86_64/openjdk-java-11
//	Nethermind/v1.14.6+6c21356f/linux-x64/dotnet6.0.11
//	erigon/2.48.1/linux-amd64/go1.19.2
//	reth/v0.2.0-beta.6/x86_64-unknown-linux-gnu
//	anvil 0.1.0 (fdd321b 2023-10-04T00:21:13.119600000Z)
//	HardhatNetwork/2.17.1/@ethereumjs/vm/5.9.3/node/v18.17.0
//
// Anything else goes through a generic extractor that scans for the
// first version-shaped token and for OS/architecture markers.
func Parse(raw string) Identity {
	id := Identity{Raw: raw}

	id.Implementation = Classify(raw)
	if id.Implementation == None {
		return id
	}

	trimmed := strings.TrimSpace(raw)

	switch id.Implementation {
	case Geth:
		parseGeth(&id, trimmed)
	case ParityOpenEthereum:
		parseParity(&id, trimmed)
	case Besu:
		parseBesu(&id, trimmed)
	case Nethermind:
		parseNethermind(&id, trimmed)
	case Erigon:
		parseErigon(&id, trimmed)
	case Reth:
		parseReth(&id, trimmed)
	case Anvil:
		parseAnvil(&id, trimmed)
	case Hardhat:
		parseHardhat(&id, trimmed)
	case Ganache, EthereumJS:
		// no stable structured format, Node.js-hosted runtimes
		if id.Implementation == Ganache {
			id.OS = "Node.js"
		}
	}

	if id.Language == "" {
		id.Language = id.Implementation.Language()
	}
	if id.Version == "" {
		if m := cachedregexp.MustCompile(versionPattern).FindStringSubmatch(trimmed); m != nil {
			id.Version = m[1]
		}
	}

	lower := strings.ToLower(trimmed)
	if id.OS == "" {
		id.OS = scanOS(lower)
	}
	if id.Architecture == "" {
		id.Architecture = scanArchitecture(lower)
	}

	return id
}

// Geth/v1.10.26-stable/linux-amd64/go1.18.5
func parseGeth(id *Identity, s string) {
	parts := strings.Split(s, "/")
	if len(parts) < 4 {
		return
	}

	id.Version = strings.TrimPrefix(parts[1], "v")
	parseOSArch(id, parts[2])

	if v, ok := strings.CutPrefix(parts[3], "go"); ok {
		id.LanguageVersion = v
	}
}

// Parity-Ethereum/v2.7.2-stable/x86_64-linux-gnu/rustc1.41.0
func parseParity(id *Identity, s string) {
	parts := strings.Split(s, "/")
	if len(parts) < 4 {
		return
	}

	id.Version = strings.TrimPrefix(parts[1], "v")
	parseTargetTriple(id, parts[2])

	if v, ok := strings.CutPrefix(parts[3], "rustc"); ok {
		id.LanguageVersion = v
	}
}

// Besu/v22.10.3/linux-x86_64/openjdk-java-11
func parseBesu(id *Identity, s string) {
	parts := strings.Split(s, "/")
	if len(parts) < 4 {
		return
	}

	id.Version = strings.TrimPrefix(parts[1], "v")
	parseOSArch(id, parts[2])

	if m := cachedregexp.MustCompile(`java-?(\d+(?:\.\d+)*)`).FindStringSubmatch(parts[3]); m != nil {
		id.LanguageVersion = m[1]
	}
}

// Nethermind/v1.14.6+6c21356f/linux-x64/dotnet6.0.11
func parseNethermind(id *Identity, s string) {
	parts := strings.Split(s, "/")
	if len(parts) < 4 {
		return
	}

	version := strings.TrimPrefix(parts[1], "v")
	if i := strings.IndexByte(version, '+'); i >= 0 {
		id.addBuildField("commit", version[i+1:])
		version = version[:i]
	}
	id.Version = version

	parseOSArch(id, parts[2])

	if v, ok := strings.CutPrefix(parts[3], "dotnet"); ok {
		id.LanguageVersion = v
	}
}

// erigon/2.48.1/linux-amd64/go1.19.2
func parseErigon(id *Identity, s string) {
	parts := strings.Split(s, "/")
	if len(parts) < 4 {
		return
	}

	id.Version = parts[1]
	parseOSArch(id, parts[2])

	if v, ok := strings.CutPrefix(parts[3], "go"); ok {
		id.LanguageVersion = v
	}
}

// reth/v0.2.0-beta.6/x86_64-unknown-linux-gnu
func parseReth(id *Identity, s string) {
	parts := strings.Split(s, "/")
	if len(parts) < 2 {
		return
	}

	id.Version = strings.TrimPrefix(parts[1], "v")

	if len(parts) >= 3 {
		parseTargetTriple(id, parts[2])
	}
}

// anvil 0.1.0 (fdd321b 2023-10-04T00:21:13.119600000Z)
func parseAnvil(id *Identity, s string) {
	if m := cachedregexp.MustCompile(`(?i)anvil\s+(\d+\.\d+\.\d+)`).FindStringSubmatch(s); m != nil {
		id.Version = m[1]
	}

	if m := cachedregexp.MustCompile(`\(([^)]+)\)`).FindStringSubmatch(s); m != nil {
		fields := strings.Fields(m[1])
		if len(fields) == 2 {
			id.addBuildField("commit", fields[0])
			id.addBuildField("build_timestamp", fields[1])
		} else {
			id.addBuildField("commit_timestamp", m[1])
		}
	}
}

// HardhatNetwork/2.17.1/@ethereumjs/vm/5.9.3/node/v18.17.0
func parseHardhat(id *Identity, s string) {
	id.OS = "Node.js"

	parts := strings.Split(s, "/")
	if len(parts) >= 2 && cachedregexp.MustCompile(`^\d+\.\d+\.\d+`).MatchString(parts[1]) {
		id.Version = parts[1]
	}

	// the node runtime version is more specific than the
	// implementation's language mapping
	for i, part := range parts {
		if part == "node" && i+1 < len(parts) {
			id.LanguageVersion = strings.TrimPrefix(parts[i+1], "v")
		}
	}
}

// parseOSArch splits an "os-arch" token such as "linux-amd64".
func parseOSArch(id *Identity, token string) {
	osPart, archPart, ok := strings.Cut(token, "-")
	if !ok {
		return
	}

	id.OS = titleCase(osPart)
	id.Architecture = archPart
}

// parseTargetTriple handles Rust-style tokens such as
// "x86_64-linux-gnu" or "aarch64-unknown-linux-gnu".
func parseTargetTriple(id *Identity, token string) {
	switch {
	case strings.Contains(token, "linux"):
		id.OS = "Linux"
	case strings.Contains(token, "darwin"), strings.Contains(token, "macos"), strings.Contains(token, "apple"):
		id.OS = "macOS"
	case strings.Contains(token, "windows"):
		id.OS = "Windows"
	}

	switch {
	case strings.HasPrefix(token, "x86_64"):
		id.Architecture = "x86_64"
	case strings.HasPrefix(token, "aarch64"):
		id.Architecture = "aarch64"
	}
}

func scanOS(lower string) string {
	switch {
	case strings.Contains(lower, "linux"):
		return "Linux"
	case strings.Contains(lower, "darwin"), strings.Contains(lower, "macos"):
		return "macOS"
	case strings.Contains(lower, "windows"), strings.Contains(lower, "win32"), strings.Contains(lower, "win64"):
		return "Windows"
	case strings.Contains(lower, "freebsd"):
		return "FreeBSD"
	case strings.Contains(lower, "openbsd"):
		return "OpenBSD"
	}

	return ""
}

func scanArchitecture(lower string) string {
	switch {
	case strings.Contains(lower, "amd64"), strings.Contains(lower, "x86_64"), strings.Contains(lower, "x64"):
		return "x86_64"
	case strings.Contains(lower, "arm64"), strings.Contains(lower, "aarch64"):
		return "ARM64"
	case strings.Contains(lower, "arm"):
		return "ARM"
	case strings.Contains(lower, "i386"), strings.Contains(lower, "x86"):
		return "x86"
	}

	return ""
}

func titleCase(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
