package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	configDir      = ".taskboard"
	configFileName = "config.json"
)

// Config stores the CLI configuration. The session token itself lives
// in the system keyring, not in this file.
type Config struct {
	APIBaseURL      string `json:"api_base_url"`
	ActiveProjectID uint   `json:"active_project_id,omitempty"`
}

// Path returns the path to the config file (~/.taskboard/config.json).
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDir, configFileName), nil
}

// Load reads the configuration, returning an empty config when the
// file does not exist yet.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration, creating ~/.taskboard if needed.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
