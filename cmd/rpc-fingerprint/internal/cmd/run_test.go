package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smolgroot/rpc-fingerprint/cmd/rpc-fingerprint/clients"
	"github.com/smolgroot/rpc-fingerprint/cmd/rpc-fingerprint/parseversion"
	"github.com/smolgroot/rpc-fingerprint/cmd/rpc-fingerprint/scan"
	"github.com/smolgroot/rpc-fingerprint/cmd/rpc-fingerprint/vulns"
)

// node imitates a JSON-RPC endpoint that only identifies itself.
func node(t *testing.T, clientVersion string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			Method string `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}

		if request.Method == "web3_clientVersion" {
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":1,"result":%q}`, clientVersion)

			return
		}

		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"method not found"}}`)
	}))
	t.Cleanup(server.Close)

	return server
}

func runCLI(t *testing.T, args []string) (int, string, string) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := Run(args, stdout, stderr, []CommandBuilder{
		scan.Command,
		parseversion.Command,
		clients.Command,
		vulns.Command,
	})

	return exitCode, stdout.String(), stderr.String()
}

func TestRun_ScanVulnerableNode(t *testing.T) {
	server := node(t, "Geth/v1.10.3-stable/linux-amd64/go1.16.3")

	exitCode, stdout, _ := runCLI(t, []string{"rpc-fingerprint", "scan", "--format", "json", server.URL})

	if exitCode != 1 {
		t.Errorf("Run() = %d, want 1", exitCode)
	}
	if !strings.Contains(stdout, "CVE-2021-39137") {
		t.Errorf("stdout does not mention the matched advisory:\n%s", stdout)
	}
}

func TestRun_ScanCleanNode(t *testing.T) {
	server := node(t, "Geth/v1.13.0-stable/linux-amd64/go1.21.0")

	exitCode, stdout, _ := runCLI(t, []string{"rpc-fingerprint", "scan", "--format", "json", server.URL})

	if exitCode != 0 {
		t.Errorf("Run() = %d, want 0", exitCode)
	}
	if !strings.Contains(stdout, `"security_risk_level": "NONE"`) {
		t.Errorf("stdout does not report a NONE risk level:\n%s", stdout)
	}
}

func TestRun_ScanWithoutEndpoints(t *testing.T) {
	exitCode, _, stderr := runCLI(t, []string{"rpc-fingerprint", "scan"})

	if exitCode != 127 {
		t.Errorf("Run() = %d, want 127", exitCode)
	}
	if !strings.Contains(stderr, "endpoint") {
		t.Errorf("stderr does not explain the missing endpoint:\n%s", stderr)
	}
}

func TestRun_DefaultsToScan(t *testing.T) {
	server := node(t, "Geth/v1.13.0-stable/linux-amd64/go1.21.0")

	exitCode, _, _ := runCLI(t, []string{"rpc-fingerprint", "--format", "json", server.URL})

	if exitCode != 0 {
		t.Errorf("Run() = %d, want 0", exitCode)
	}
}

func TestRun_UnsupportedFormat(t *testing.T) {
	exitCode, _, stderr := runCLI(t, []string{"rpc-fingerprint", "scan", "--format", "xml", "http://localhost:8545"})

	if exitCode != 127 {
		t.Errorf("Run() = %d, want 127", exitCode)
	}
	if !strings.Contains(stderr, "unsupported output format") {
		t.Errorf("stderr does not mention the unsupported format:\n%s", stderr)
	}
}

func TestRun_ParseVersion(t *testing.T) {
	exitCode, stdout, _ := runCLI(t, []string{
		"rpc-fingerprint", "parse-version", "--format", "json",
		"Geth/v1.10.8-stable/linux-amd64/go1.16.6",
	})

	if exitCode != 0 {
		t.Errorf("Run() = %d, want 0", exitCode)
	}
	if !strings.Contains(stdout, `"version": "1.10.8-stable"`) {
		t.Errorf("stdout does not contain the parsed version:\n%s", stdout)
	}
}

func TestRun_Clients(t *testing.T) {
	exitCode, stdout, _ := runCLI(t, []string{"rpc-fingerprint", "clients", "--format", "json", "--include-dev"})

	if exitCode != 0 {
		t.Errorf("Run() = %d, want 0", exitCode)
	}
	for _, name := range []string{"Geth", "Nethermind", "Anvil"} {
		if !strings.Contains(stdout, name) {
			t.Errorf("stdout does not list %s:\n%s", name, stdout)
		}
	}
}

func TestRun_Vulns(t *testing.T) {
	exitCode, stdout, _ := runCLI(t, []string{"rpc-fingerprint", "vulns", "--format", "json", "geth", "1.10.3"})

	if exitCode != 0 {
		t.Errorf("Run() = %d, want 0", exitCode)
	}
	if !strings.Contains(stdout, "CVE-2021-39137") {
		t.Errorf("stdout does not mention the matched advisory:\n%s", stdout)
	}
}
