// Package config loads the adapter discovery configuration.
//
// Config file locations (priority order):
//  1. $ECOSHW_CONFIG
//  2. ./ecoshw.yaml
//  3. /etc/ecoshw/config.yaml
//
// With no file present the defaults reproduce the stock native backend:
// prefixes ie1g, rtl1g and rtl1gl, four instances each.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Backend names.
const (
	BackendNative = "native"
	BackendSystem = "system"
)

// Native driver names.
const (
	DriverPcap    = "pcap"
	DriverRawSock = "rawsock"
)

// System source names.
const (
	SourceNet  = "net"
	SourcePcap = "pcap"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config is the complete configuration.
type Config struct {
	Backend     string       `yaml:"backend"`
	MaxAdapters int          `yaml:"max_adapters"`
	Native      NativeConfig `yaml:"native"`
	System      SystemConfig `yaml:"system"`
	Log         LogConfig    `yaml:"log"`
	HTTP        HTTPConfig   `yaml:"http"`
}

// NativeConfig drives the probing enumerator.
type NativeConfig struct {
	Prefixes  []string `yaml:"prefixes"`
	Instances int      `yaml:"instances"`
	Driver    string   `yaml:"driver"`
}

// SystemConfig drives the OS-list enumerator.
type SystemConfig struct {
	Source           string   `yaml:"source"`
	ReservedPrefixes []string `yaml:"reserved_prefixes"`
}

// LogConfig holds logging settings. An empty File logs to stderr.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// HTTPConfig enables the adapter listing endpoint when Listen is set.
type HTTPConfig struct {
	Listen string `yaml:"listen"`
}

// Load finds and loads the config file, or returns defaults if none found.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Parse decodes YAML, fills defaults and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindConfigPath returns the first existing config file, or "".
func FindConfigPath() string {
	if p := os.Getenv("ECOSHW_CONFIG"); p != "" {
		return p
	}
	for _, p := range []string{"./ecoshw.yaml", "/etc/ecoshw/config.yaml"} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendNative
	}
	if len(c.Native.Prefixes) == 0 {
		c.Native.Prefixes = []string{"ie1g", "rtl1g", "rtl1gl"}
	}
	if c.Native.Instances == 0 {
		c.Native.Instances = 4
	}
	if c.Native.Driver == "" {
		c.Native.Driver = DriverPcap
	}
	if c.System.Source == "" {
		c.System.Source = SourceNet
	}
	// A nil list means "not configured"; an explicit [] disables filtering.
	if c.System.ReservedPrefixes == nil {
		c.System.ReservedPrefixes = []string{"ven"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendNative, BackendSystem:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Backend)
	}
	switch c.Native.Driver {
	case DriverPcap, DriverRawSock:
	default:
		return fmt.Errorf("%w: unknown native driver %q", ErrInvalid, c.Native.Driver)
	}
	switch c.System.Source {
	case SourceNet, SourcePcap:
	default:
		return fmt.Errorf("%w: unknown system source %q", ErrInvalid, c.System.Source)
	}
	if c.Native.Instances < 0 {
		return fmt.Errorf("%w: native.instances must not be negative", ErrInvalid)
	}
	if c.MaxAdapters < 0 {
		return fmt.Errorf("%w: max_adapters must not be negative", ErrInvalid)
	}
	for _, p := range c.Native.Prefixes {
		if p == "" {
			return fmt.Errorf("%w: empty native prefix", ErrInvalid)
		}
	}
	return nil
}
