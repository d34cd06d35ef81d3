package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/xll-gen/bin2hdr/internal/generator"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up in the working directory
// when no --config flag is given.
const DefaultPath = "bin2hdr.yaml"

// Config represents the top-level configuration structure parsed from bin2hdr.yaml.
type Config struct {
	// Output controls how the generated file is laid out.
	Output OutputConfig `yaml:"output"`
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig controls the generated document.
type OutputConfig struct {
	// Dialect selects the array declaration style ("progmem" or "portable").
	Dialect string `yaml:"dialect"`
	// Format selects the output format ("header" or "ihex").
	Format string `yaml:"format"`
	// RowWidth is the number of byte values per row (per record for ihex).
	RowWidth int `yaml:"row_width"`
	// StrictIdentifiers sanitizes derived identifiers into valid C symbols.
	StrictIdentifiers bool `yaml:"strict_identifiers"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// Path is the log file path. Empty means stderr.
	Path string `yaml:"path"`
}

// validDialects is the set of allowed output dialects in bin2hdr.yaml.
var validDialects = map[string]bool{
	"progmem":  true,
	"portable": true,
}

// validFormats is the set of allowed output formats in bin2hdr.yaml.
var validFormats = map[string]bool{
	"header": true,
	"ihex":   true,
}

// MaxRowWidth bounds row_width for headers.
const MaxRowWidth = 255

// MaxIntelHexRowWidth bounds row_width for the ihex format.
const MaxIntelHexRowWidth = generator.MaxIntelHexRowWidth

// Load reads and parses the configuration at path.
// When explicit is false a missing file yields an empty configuration,
// otherwise it is reported as an error.
func Load(path string, explicit bool) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the configuration for unsupported values.
//
// Parameters:
//   - config: The Config object to validate.
//
// Returns:
//   - error: An error if the configuration is invalid, or nil otherwise.
func Validate(config *Config) error {
	if config.Output.Dialect != "" && !validDialects[config.Output.Dialect] {
		return fmt.Errorf("invalid dialect: %s (allowed: %s)", config.Output.Dialect, allowedList(validDialects))
	}

	if config.Output.Format != "" && !validFormats[config.Output.Format] {
		return fmt.Errorf("invalid format: %s (allowed: %s)", config.Output.Format, allowedList(validFormats))
	}

	if config.Output.RowWidth < 0 || config.Output.RowWidth > MaxRowWidth {
		return fmt.Errorf("invalid row_width: %d (allowed: 1-%d, 0 for the default)", config.Output.RowWidth, MaxRowWidth)
	}
	if config.Output.Format == "ihex" && config.Output.RowWidth > MaxIntelHexRowWidth {
		return fmt.Errorf("invalid row_width: %d for ihex (allowed: 1-%d)", config.Output.RowWidth, MaxIntelHexRowWidth)
	}

	if config.Logging.Level != "" {
		switch strings.ToLower(config.Logging.Level) {
		case "debug", "info", "warn", "error":
			// ok
		default:
			return fmt.Errorf("invalid logging level: %s (allowed: debug, info, warn, error)", config.Logging.Level)
		}
	}

	return nil
}

func allowedList(m map[string]bool) string {
	var keys []string
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

// ApplyDefaults sets default values for configuration fields that are missing.
// The defaults reproduce the classic Arduino header: PROGMEM arrays, 16 values per row.
//
// Parameters:
//   - config: The Config object to modify.
func ApplyDefaults(config *Config) {
	if config.Output.Dialect == "" {
		config.Output.Dialect = "progmem"
	}
	if config.Output.Format == "" {
		config.Output.Format = "header"
	}
	if config.Output.RowWidth == 0 {
		config.Output.RowWidth = 16
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
}
