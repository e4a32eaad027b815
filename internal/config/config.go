// Package config loads the CLI configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the mailsieve CLI configuration.
type Config struct {
	BaseURL       string   `yaml:"base_url"`
	Password      string   `yaml:"password"`
	EncryptionKey string   `yaml:"encryption_key"`
	Timeout       Duration `yaml:"timeout"`
	Retries       int      `yaml:"retries"`
	Compression   *bool    `yaml:"compression"`
}

// Duration accepts "30s"-style values in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// DefaultPath returns the default config file path: ~/.mailsieve/config.yaml
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mailsieve", "config.yaml")
	}
	return filepath.Join(home, ".mailsieve", "config.yaml")
}

// Load reads the configuration from the given YAML file path.
// If the file does not exist, it returns a default Config with no error.
func Load(path string) (*Config, error) {
	cfg := &Config{
		BaseURL: "http://localhost:11333",
		Timeout: Duration(30 * time.Second),
	}

	// Check permissions before reading: warn if the config file is
	// world-readable, since it may contain the controller password.
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		fmt.Fprintf(os.Stderr,
			"warning: config file %s has permissions %04o — expected 0600. "+
				"The controller password may be exposed to other users.\n",
			path, perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
