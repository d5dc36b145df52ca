// Package config loads cmd/vktorcat's optional YAML configuration file,
// the way SnellerInc/sneller loads its YAML-based tenant/environment
// config: unmarshal into a plain struct, then let flags override
// whatever the file set.
package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Config holds cmd/vktorcat's tunables.
type Config struct {
	// MaxDepth bounds the nesting stack vktor.NewParser enforces. 0
	// means unlimited.
	MaxDepth int `json:"maxDepth"`
	// ChunkSize is the read buffer size used when streaming input.
	ChunkSize int `json:"chunkSize"`
	// Dedup enables fingerprint-based duplicate document suppression
	// in batch mode.
	Dedup bool `json:"dedup"`
	// Color is read from the config file (default true); cmd/vktorcat
	// does not use it, and its token output is never colored.
	Color bool `json:"color"`
}

// Default returns the configuration used when no file is loaded.
func Default() Config {
	return Config{
		MaxDepth:  0,
		ChunkSize: 64 * 1024,
		Dedup:     false,
		Color:     true,
	}
}

// Load reads and parses a YAML config file at path, starting from
// Default() and overriding only the fields the file sets.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
