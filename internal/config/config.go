// Package config loads the application configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Backend points at the external processing API.
type Backend struct {
	URL string `yaml:"url"`
}

// Identity points at the external identity provider.
type Identity struct {
	URL             string `yaml:"url"`
	APIKey          string `yaml:"api_key"`
	TokenTTLSeconds int    `yaml:"token_ttl_seconds"`
}

// Storage selects how JSON documents are persisted locally.
type Storage struct {
	Mode       string `yaml:"mode"` // "local" or "sqlite"
	Dir        string `yaml:"dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Logs controls log output.
type Logs struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

// Root is the full configuration tree.
type Root struct {
	Backend  Backend  `yaml:"backend"`
	Identity Identity `yaml:"identity"`
	Storage  Storage  `yaml:"storage"`
	Logs     Logs     `yaml:"logs"`
	Audio    struct {
		Dir string `yaml:"dir"`
	} `yaml:"audio"`
	Activity struct {
		IntervalSeconds int `yaml:"interval_seconds"`
	} `yaml:"activity"`
}

// Default returns the configuration used when no file is found.
func Default() *Root {
	cfg := &Root{}
	cfg.Backend.URL = "http://localhost:8000"
	cfg.Identity.URL = "https://identitytoolkit.googleapis.com"
	cfg.Identity.TokenTTLSeconds = 300
	cfg.Storage.Mode = "local"
	cfg.Storage.Dir = "data"
	cfg.Storage.SQLitePath = "theracompass.sqlite"
	cfg.Logs.Dir = "logs"
	cfg.Logs.Level = "info"
	cfg.Activity.IntervalSeconds = 60
	return cfg
}

// Load reads the configuration. An explicit path wins; otherwise the
// THERACOMPASS_CONFIG env var, then config.yaml in the working directory.
// A missing file yields defaults; a file that exists but will not parse is
// an error.
func Load(path string) (*Root, error) {
	if path == "" {
		path = os.Getenv("THERACOMPASS_CONFIG")
	}
	if path == "" {
		path = filepath.Join(".", "config.yaml")
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}
