// Package config loads pmboard settings from defaults, an optional YAML
// file, PM_* environment variables and command-line flags, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. PM_API_URL.
const EnvPrefix = "PM"

// Config is the full pmboard configuration.
type Config struct {
	APIURL      string        `yaml:"api_url" mapstructure:"api_url"`
	OrgSlug     string        `yaml:"org_slug" mapstructure:"org_slug"`
	WebURL      string        `yaml:"web_url" mapstructure:"web_url"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	CacheTTL    time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	ListShape   string        `yaml:"list_shape" mapstructure:"list_shape"`
	AuthorEmail string        `yaml:"author_email" mapstructure:"author_email"`
	LogFile     string        `yaml:"log_file" mapstructure:"log_file"`
	LogLevel    string        `yaml:"log_level" mapstructure:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		APIURL:    "http://localhost:8000/graphql/",
		Timeout:   15 * time.Second,
		CacheTTL:  30 * time.Second,
		ListShape: "aggregate",
		LogLevel:  "info",
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"api-url":      "api_url",
	"org":          "org_slug",
	"web-url":      "web_url",
	"timeout":      "timeout",
	"cache-ttl":    "cache_ttl",
	"list-shape":   "list_shape",
	"author-email": "author_email",
	"log-file":     "log_file",
	"log-level":    "log_level",
}

// Options controls where Load looks.
type Options struct {
	// File is an explicit config file. It must exist when set; otherwise
	// DefaultPath is read if present.
	File string
	// Flags, when set, override every other source for flags the user
	// actually passed.
	Flags *pflag.FlagSet
}

// DefaultPath returns ~/.config/pmboard/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pmboard", "config.yaml")
}

// Load builds the configuration.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	path := opts.File
	if path == "" {
		if p := DefaultPath(); p != "" {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api_url", cfg.APIURL)
	v.SetDefault("org_slug", cfg.OrgSlug)
	v.SetDefault("web_url", cfg.WebURL)
	v.SetDefault("timeout", cfg.Timeout)
	v.SetDefault("cache_ttl", cfg.CacheTTL)
	v.SetDefault("list_shape", cfg.ListShape)
	v.SetDefault("author_email", cfg.AuthorEmail)
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("log_level", cfg.LogLevel)
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.APIURL) == "" {
		errs = append(errs, errors.New("api_url is required"))
	}
	switch c.ListShape {
	case "aggregate", "embedded":
	default:
		errs = append(errs, fmt.Errorf("list_shape must be aggregate or embedded, got %q", c.ListShape))
	}
	if c.Timeout < 0 {
		errs = append(errs, errors.New("timeout must not be negative"))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, errors.New("cache_ttl must not be negative"))
	}
	return errors.Join(errs...)
}

// ProjectURL returns the web page of a project, or "" when no web_url is
// configured.
func (c *Config) ProjectURL(id string) string {
	if c.WebURL == "" || id == "" {
		return ""
	}
	return strings.TrimRight(c.WebURL, "/") + "/projects/" + id
}
