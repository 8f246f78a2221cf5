// Package config manages the optional configuration file for
// rpc-fingerprint.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

var ConfigName = "rpc-fingerprint.toml"

type Config struct {
	// Timeout for each RPC request, in seconds. Zero means the
	// command-line default applies.
	Timeout int `toml:"timeout,omitempty"`
	// MaxConcurrent bounds the endpoint fan-out. Zero means the
	// command-line default applies.
	MaxConcurrent int `toml:"max_concurrent,omitempty"`
	// Database overrides the embedded vulnerability database.
	Database     string         `toml:"database,omitempty"`
	IgnoredVulns []*IgnoreEntry `toml:"IgnoredVulns"`

	// The path to config file that this config was loaded from,
	// set after having successfully parsed the file
	LoadPath string `toml:"-"`
}

type IgnoreEntry struct {
	ID     string `toml:"id"`
	Reason string `toml:"reason,omitempty"`
}

// ShouldIgnore reports whether the given advisory ID has been ignored
// by the config, along with the matching entry.
func (c *Config) ShouldIgnore(id string) (bool, IgnoreEntry) {
	for _, entry := range c.IgnoredVulns {
		if entry.ID == id {
			return true, *entry
		}
	}

	return false, IgnoreEntry{}
}

// Load reads a config file from an explicit path.
func Load(path string) (Config, error) {
	config := Config{}

	_, err := toml.DecodeFile(path, &config)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	config.LoadPath = path

	return config, nil
}

// TryLoad looks for the default config file in the working directory,
// returning a zero config if there is none.
func TryLoad() (Config, error) {
	if _, err := os.Stat(ConfigName); err != nil {
		return Config{}, nil
	}

	return Load(ConfigName)
}
