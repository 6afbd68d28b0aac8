package gql

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the .gql.yaml configuration file.
type Config struct {
	Limits LimitsConfig `yaml:"limits,omitempty"`
	Log    LogConfig    `yaml:"log,omitempty"`
	Check  CheckConfig  `yaml:"check,omitempty"`
}

// LimitsConfig bounds the inputs tools accept.
type LimitsConfig struct {
	// MaxInputBytes rejects larger inputs before parsing. Zero disables the
	// check.
	MaxInputBytes int `yaml:"max_input_bytes,omitempty"`
}

// LogConfig holds logging settings for the binaries.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level,omitempty"`
}

// CheckConfig holds settings for the check command.
type CheckConfig struct {
	// Extensions selects the files picked up when walking a directory,
	// without the leading dot.
	Extensions []string `yaml:"extensions,omitempty"`

	// Filter is an expression selecting which diagnostics to report.
	Filter string `yaml:"filter,omitempty"`

	// Format is text or json.
	Format string `yaml:"format,omitempty"`
}

// DefaultMaxInputBytes is the input limit of DefaultConfig.
const DefaultMaxInputBytes = 1 << 20

// DefaultConfig returns the settings used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{MaxInputBytes: DefaultMaxInputBytes},
		Log:    LogConfig{Level: "info"},
		Check: CheckConfig{
			Extensions: []string{"gql", "gqls"},
			Format:     "text",
		},
	}
}

// CheckInput returns ErrInputTooLarge when size exceeds the configured limit.
func (c *Config) CheckInput(size int) error {
	if c.Limits.MaxInputBytes > 0 && size > c.Limits.MaxInputBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrInputTooLarge, size, c.Limits.MaxInputBytes)
	}

	return nil
}

// DefaultConfigNames are the filenames we search for.
var DefaultConfigNames = []string{".gql.yaml", ".gql.yml", "gql.yaml", "gql.yml"}

// LoadConfig finds and loads the nearest .gql.yaml walking up from dir.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}

	return LoadConfigFile(path)
}

// FindConfig searches for a config file starting from dir and walking up.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for dir := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(dir, name)

			_, err := os.Stat(path)
			if err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}

		dir = parent
	}
}

// LoadConfigFile loads a config from a specific path. Settings absent from
// the file keep their DefaultConfig values.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return cfg, nil
}
