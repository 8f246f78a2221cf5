// Package main implements the main entrypoint for rpc-fingerprint.
package main

import (
	"os"

	"github.com/smolgroot/rpc-fingerprint/cmd/rpc-fingerprint/clients"
	"github.com/smolgroot/rpc-fingerprint/cmd/rpc-fingerprint/internal/cmd"
	"github.com/smolgroot/rpc-fingerprint/cmd/rpc-fingerprint/parseversion"
	"github.com/smolgroot/rpc-fingerprint/cmd/rpc-fingerprint/scan"
	"github.com/smolgroot/rpc-fingerprint/cmd/rpc-fingerprint/vulns"
)

func main() {
	os.Exit(cmd.Run(os.Args, os.Stdout, os.Stderr, []cmd.CommandBuilder{
		scan.Command,
		parseversion.Command,
		clients.Command,
		vulns.Command,
	}))
}
