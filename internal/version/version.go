// Package version holds the current release version of rpc-fingerprint.
package version

// Version is the current release of rpc-fingerprint.
var Version = "1.0.0"
