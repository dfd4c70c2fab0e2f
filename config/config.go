// Package config loads the TOML file that tells the minirel CLI (and
// bench harness) which tables exist, where their schema definitions
// live, and which directory holds their heap/index/B+-tree files.
// Grounded on Pieczasz-smf/internal/parser/toml/parser.go's use of
// github.com/BurntSushi/toml's streaming Decoder over a typed document
// struct.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// TableConfig describes one table entry in the registry file.
type TableConfig struct {
	Name       string `toml:"name"`
	SchemaPath string `toml:"schema_path"`
}

// Config is the top-level document: a data directory shared by every
// table plus the list of tables it contains.
type Config struct {
	DataDir string        `toml:"data_dir"`
	Tables  []TableConfig `toml:"tables"`
}

// Load reads and decodes the registry file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if _, err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode %q: %w", path, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	return &cfg, nil
}

// Table returns the TableConfig named name, or false if absent.
func (c *Config) Table(name string) (TableConfig, bool) {
	for _, t := range c.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return TableConfig{}, false
}

// Save writes cfg back to path as TOML.
func Save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %q: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode %q: %w", path, err)
	}
	return nil
}
