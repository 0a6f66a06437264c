package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/barysiuk/catalyst/internal/core/client"
)

const (
	configDirName  = ".catalyst"
	configFileName = "config.yaml"

	// DefaultOutputDir is where packages are written when not configured.
	DefaultOutputDir = "tmp"

	// DefaultPackageVersion is stamped on manifests when not configured.
	DefaultPackageVersion = "1.0.0"
)

// ConfigManager handles reading and writing the catalyst configuration.
type ConfigManager struct {
	path string
	mu   sync.RWMutex
}

// NewConfigManager creates a ConfigManager using the default config path
// (~/.catalyst/config.yaml).
func NewConfigManager() (*ConfigManager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	return NewConfigManagerWithDir(filepath.Join(home, configDirName)), nil
}

// NewConfigManagerWithDir creates a ConfigManager using a custom config directory.
// Useful for testing.
func NewConfigManagerWithDir(dir string) *ConfigManager {
	return &ConfigManager{path: filepath.Join(dir, configFileName)}
}

// NewConfigManagerWithPath creates a ConfigManager for an explicit config file.
func NewConfigManagerWithPath(path string) *ConfigManager {
	return &ConfigManager{path: path}
}

// ConfigPath returns the full path to the config file.
func (cm *ConfigManager) ConfigPath() string {
	return cm.path
}

// Load reads the config from disk. Returns default config if file doesn't exist.
// Keys absent from the file keep their defaults.
func (cm *ConfigManager) Load() (*Config, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	cfg := DefaultConfig()
	data, err := os.ReadFile(cm.path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", cm.path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cm.path, err)
	}
	return cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (cm *ConfigManager) Save(cfg *Config) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	dir := filepath.Dir(cm.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Write atomically: write to temp file then rename
	tmpPath := cm.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmpPath, cm.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving config: %w", err)
	}

	return nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:      DefaultOutputDir,
		PackageVersion: DefaultPackageVersion,
		Detection: DetectionConfig{
			Timeout:  client.DefaultProbeTimeout,
			Commands: true,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Validate checks field formats.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Detection.Timeout < 0 {
		return fmt.Errorf("detection.timeout must not be negative, got %s", c.Detection.Timeout)
	}
	return nil
}

// ClientOptions translates the detection settings into client options.
func (c *Config) ClientOptions() []client.Option {
	if c.Detection.Commands {
		return nil
	}
	return []client.Option{client.WithoutCommandProbe()}
}

// ProbeTimeout returns the per-client detection timeout.
func (c *Config) ProbeTimeout() time.Duration {
	if c.Detection.Timeout <= 0 {
		return client.DefaultProbeTimeout
	}
	return c.Detection.Timeout
}

// ErrUnknownConfigKey is returned by Get and Set for keys not in ConfigKeys.
var ErrUnknownConfigKey = errors.New("unknown config key")

// ConfigKeys lists the keys accepted by Get and Set, in file order.
var ConfigKeys = []string{
	"output_dir",
	"package_version",
	"default_client",
	"detection.timeout",
	"detection.commands",
	"logging.level",
	"logging.format",
}

// Get returns the value of key as it would be written on the command line.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "output_dir":
		return c.OutputDir, nil
	case "package_version":
		return c.PackageVersion, nil
	case "default_client":
		return c.DefaultClient, nil
	case "detection.timeout":
		return c.Detection.Timeout.String(), nil
	case "detection.commands":
		return strconv.FormatBool(c.Detection.Commands), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	}
	return "", unknownKey(key)
}

// Set parses value into key. The config is left unchanged when the value is
// rejected.
func (c *Config) Set(key, value string) error {
	next := *c
	switch key {
	case "output_dir":
		next.OutputDir = value
	case "package_version":
		next.PackageVersion = value
	case "default_client":
		if known := client.Names(client.Defaults()); value != "" && !slices.Contains(known, value) {
			return fmt.Errorf("%w: unknown client %q; available: %s",
				client.ErrClientNotFound, value, strings.Join(known, ", "))
		}
		next.DefaultClient = value
	case "detection.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("detection.timeout: %w", err)
		}
		next.Detection.Timeout = d
	case "detection.commands":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("detection.commands: %w", err)
		}
		next.Detection.Commands = b
	case "logging.level":
		next.Logging.Level = value
	case "logging.format":
		next.Logging.Format = value
	default:
		return unknownKey(key)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func unknownKey(key string) error {
	return fmt.Errorf("%w %q; valid keys: %s", ErrUnknownConfigKey, key, strings.Join(ConfigKeys, ", "))
}
