// Package config loads the converter settings from defaults, an optional
// config file, PQ2CSV_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
)

// Default file names used when no positional arguments are given. They
// name the snapshot this tool was first written for; override them with a
// config file or PQ2CSV_INPUT / PQ2CSV_OUTPUT.
const (
	DefaultInput  = "instrument_master_2025-12-04 1.parquet"
	DefaultOutput = "instrument_master_2025-12-04.csv"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "PQ2CSV"

// Keys of the configuration values.
const (
	KeyInput            = "input"
	KeyOutput           = "output"
	KeyRoot             = "root"
	KeyReadOnly         = "read_only"
	KeyDelimiter        = "delimiter"
	KeyPreviewRows      = "preview_rows"
	KeySanitizeFormulas = "sanitize_formulas"
	KeyLogLevel         = "log_level"
)

// Config holds the resolved settings of one run.
type Config struct {
	Input            string `mapstructure:"input"`
	Output           string `mapstructure:"output"`
	Root             string `mapstructure:"root"`
	ReadOnly         bool   `mapstructure:"read_only"`
	Delimiter        string `mapstructure:"delimiter"`
	PreviewRows      int    `mapstructure:"preview_rows"`
	SanitizeFormulas bool   `mapstructure:"sanitize_formulas"`
	LogLevel         string `mapstructure:"log_level"`
}

// New returns a viper instance with defaults and environment overrides
// registered.
func New() *viper.Viper {
	v := viper.New()
	setDefault(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func setDefault(v *viper.Viper) {
	v.SetDefault(KeyInput, DefaultInput)
	v.SetDefault(KeyOutput, DefaultOutput)
	v.SetDefault(KeyRoot, "")
	v.SetDefault(KeyReadOnly, false)
	v.SetDefault(KeyDelimiter, ",")
	v.SetDefault(KeyPreviewRows, 5)
	v.SetDefault(KeySanitizeFormulas, false)
	v.SetDefault(KeyLogLevel, "warn")
}

// Load reads file (when not empty) into v and decodes the merged settings.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that cannot be checked by decoding alone.
func (c *Config) Validate() error {
	if _, err := ParseDelimiter(c.Delimiter); err != nil {
		return err
	}
	if c.PreviewRows < 0 {
		return fmt.Errorf("preview_rows must be non-negative, got %d", c.PreviewRows)
	}
	if strings.TrimSpace(c.Input) == "" {
		return errors.New("input path must not be empty")
	}
	if strings.TrimSpace(c.Output) == "" {
		return errors.New("output path must not be empty")
	}
	return nil
}

// DelimiterRune returns the configured delimiter. Validate must have passed.
func (c *Config) DelimiterRune() rune {
	r, _ := ParseDelimiter(c.Delimiter)
	return r
}

// ParseDelimiter accepts a single character, or "tab" / `\t` for a tab.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	switch r {
	case '"', '\r', '\n', utf8.RuneError:
		return 0, fmt.Errorf("delimiter %q is not allowed", s)
	}
	return r, nil
}
