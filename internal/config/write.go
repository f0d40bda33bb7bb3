package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig is Config as written to disk. Durations are stored in their
// string form so the file stays hand-editable.
type fileConfig struct {
	APIURL      string `yaml:"api_url"`
	OrgSlug     string `yaml:"org_slug,omitempty"`
	WebURL      string `yaml:"web_url,omitempty"`
	Timeout     string `yaml:"timeout"`
	CacheTTL    string `yaml:"cache_ttl"`
	ListShape   string `yaml:"list_shape"`
	AuthorEmail string `yaml:"author_email,omitempty"`
	LogFile     string `yaml:"log_file,omitempty"`
	LogLevel    string `yaml:"log_level"`
}

// Marshal encodes cfg in the config file format.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(fileConfig{
		APIURL:      cfg.APIURL,
		OrgSlug:     cfg.OrgSlug,
		WebURL:      cfg.WebURL,
		Timeout:     cfg.Timeout.String(),
		CacheTTL:    cfg.CacheTTL.String(),
		ListShape:   cfg.ListShape,
		AuthorEmail: cfg.AuthorEmail,
		LogFile:     cfg.LogFile,
		LogLevel:    cfg.LogLevel,
	})
}

// WriteFile writes cfg to path, creating parent directories. An existing
// file is left alone unless overwrite is set.
func WriteFile(path string, cfg *Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
