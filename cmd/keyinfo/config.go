package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const envKeyinfoConfig = "KEYINFO_CONFIG"

// Config represents the keyinfo configuration file
// (~/.config/keyinfo/config.yaml or config.toml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	TerminfoDirs []string `yaml:"terminfo_dirs" toml:"terminfo_dirs"`
	ArenaLimit   *int64   `yaml:"arena_limit" toml:"arena_limit"`

	// Output
	LogLevel  string `yaml:"log_level" toml:"log_level"`
	LogFormat string `yaml:"log_format" toml:"log_format"`

	// Server
	ServerAddress string   `yaml:"server_address" toml:"server_address"`
	RateLimit     *float64 `yaml:"rate_limit" toml:"rate_limit"`
	RateBurst     *int64   `yaml:"rate_burst" toml:"rate_burst"`
	Watch         *bool    `yaml:"watch" toml:"watch"`
}

// appConfig is the config loaded by the root command's Before hook.
var appConfig Config

func defaultConfigPaths() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(dir, "keyinfo", "config.yaml"),
		filepath.Join(dir, "keyinfo", "config.toml"),
	}
}

// LoadConfig reads the config at explicit, or the first default location that
// exists. A missing default file yields a zero Config; a missing explicit one
// is an error.
func LoadConfig(explicit string) (Config, string, error) {
	explicit = strings.TrimSpace(explicit)
	if explicit != "" {
		cfg, err := readConfig(explicit)
		return cfg, explicit, err
	}
	for _, path := range defaultConfigPaths() {
		cfg, err := readConfig(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, path, err
	}
	return Config{}, "", nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml", "":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config %s: unsupported extension", path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// applyGlobalConfig applies config file defaults to the logging flags when
// they were not explicitly set.
func applyGlobalConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyEntryConfig applies config file defaults to the entry flags.
func applyEntryConfig(c *cli.Command, cfg Config) {
	if len(cfg.TerminfoDirs) > 0 && !c.IsSet("terminfo-dir") {
		terminfoDirs = cfg.TerminfoDirs
	}
	if cfg.ArenaLimit != nil && !c.IsSet("arena-limit") {
		arenaLimit = *cfg.ArenaLimit
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string, limit *float64, burst *int64, watch *bool) {
	applyEntryConfig(c, cfg)
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.RateLimit != nil && !c.IsSet("rate-limit") {
		*limit = *cfg.RateLimit
	}
	if cfg.RateBurst != nil && !c.IsSet("rate-burst") {
		*burst = *cfg.RateBurst
	}
	if cfg.Watch != nil && !c.IsSet("watch") {
		*watch = *cfg.Watch
	}
}
