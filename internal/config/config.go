// Package config provides configuration management for the generator.
//
// Values are merged in this order, later sources win:
// built-in defaults, the TOML config file, a ".env" file and CEMBER_* environment variables.
// Command line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/maja42/cember/embedding"
	"github.com/maja42/cember/internal"
)

// DefaultFile is loaded if no config file was given explicitly and the file exists.
const DefaultFile = "cember.toml"

// Config holds the generator configuration
type Config struct {
	InputDirs    []string `toml:"input_dirs"`
	OutputSource string   `toml:"output_source"`
	OutputHeader string   `toml:"output_header"`
	Guard        string   `toml:"guard"`    // derived from output_header if empty
	Strip        string   `toml:"strip"`    // one, all
	Symlinks     string   `toml:"symlinks"` // files, skip, error
	LogLevel     string   `toml:"log_level"`
	LogPretty    bool     `toml:"log_pretty"`
}

// Default returns the configuration used without config file, environment or flags.
func Default() *Config {
	return &Config{
		InputDirs:    []string{"src/resources/fonts", "src/resources/icons"},
		OutputSource: "build/builtin_resources.c",
		OutputHeader: "build/builtin_resources.h",
		Strip:        internal.StripOne.String(),
		Symlinks:     internal.SymlinksFiles.String(),
		LogLevel:     "info",
		LogPretty:    true,
	}
}

// Load reads the configuration.
// path names the TOML config file; if empty, DefaultFile is used when it exists.
func Load(path string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("failed to load config file %q: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config file %q: unknown key %q", path, undecoded[0].String())
	}

	// relative paths within the config file are relative to the file itself
	dir := filepath.Dir(path)
	if meta.IsDefined("input_dirs") {
		for i, d := range c.InputDirs {
			c.InputDirs[i] = relativeTo(dir, d)
		}
	}
	if meta.IsDefined("output_source") {
		c.OutputSource = relativeTo(dir, c.OutputSource)
	}
	if meta.IsDefined("output_header") {
		c.OutputHeader = relativeTo(dir, c.OutputHeader)
	}
	return nil
}

func relativeTo(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func (c *Config) loadEnv() error {
	if dirs := getEnv("CEMBER_INPUT_DIRS", ""); dirs != "" {
		c.InputDirs = filepath.SplitList(dirs)
	}
	c.OutputSource = getEnv("CEMBER_OUTPUT_SOURCE", c.OutputSource)
	c.OutputHeader = getEnv("CEMBER_OUTPUT_HEADER", c.OutputHeader)
	c.Guard = getEnv("CEMBER_GUARD", c.Guard)
	c.Strip = getEnv("CEMBER_STRIP", c.Strip)
	c.Symlinks = getEnv("CEMBER_SYMLINKS", c.Symlinks)
	c.LogLevel = getEnv("CEMBER_LOG_LEVEL", c.LogLevel)

	pretty, err := getEnvAsBool("CEMBER_LOG_PRETTY", c.LogPretty)
	if err != nil {
		return err
	}
	c.LogPretty = pretty
	return nil
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if _, err := internal.ParseStripMode(c.Strip); err != nil {
		return err
	}
	if _, err := internal.ParseSymlinkPolicy(c.Symlinks); err != nil {
		return err
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// Options converts the configuration into generator options.
func (c *Config) Options() (embedding.Options, error) {
	if err := c.Validate(); err != nil {
		return embedding.Options{}, err
	}
	if len(c.InputDirs) == 0 {
		return embedding.Options{}, errors.New("no input directories configured")
	}
	strip, _ := internal.ParseStripMode(c.Strip)
	symlinks, _ := internal.ParseSymlinkPolicy(c.Symlinks)

	dirs := make([]string, len(c.InputDirs))
	for i, d := range c.InputDirs {
		dirs[i] = strings.TrimSpace(d)
	}
	return embedding.Options{
		InputDirs:    dirs,
		OutputSource: c.OutputSource,
		OutputHeader: c.OutputHeader,
		Guard:        c.Guard,
		Strip:        strip,
		Symlinks:     symlinks,
	}, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}
	return b, nil
}
