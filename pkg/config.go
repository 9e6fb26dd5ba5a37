package lfscheck

import (
	"fmt"

	"github.com/go-ini/ini"
)

// DefaultChunkSize is the read buffer size used when streaming file
// contents into the digest. The original checker read 8192-byte
// chunks; the size has no effect on the resulting digest.
const DefaultChunkSize = 8192

// Config holds the optional INI configuration. A zero-value Config
// (no file loaded) answers every getter with built-in defaults.
type Config struct {
	configPath string
	ini        *ini.File
}

// FingerprintConfig controls the fingerprint walk.
type FingerprintConfig struct {
	Buffer int // Read buffer size in bytes
}

// VerboseConfig controls trace output.
type VerboseConfig struct {
	Level int    // Verbosity level (0 = quiet)
	Debug string // Comma-separated debug channels
}

// IgnoreConfig points at an optional ignore-pattern file.
type IgnoreConfig struct {
	Patterns string // Path to the pattern file, empty for none
}

// LoadConfig loads configuration from an INI file. An empty path
// yields a Config that serves defaults only. The tool runs inside
// build scripts, so unlike interactive tools it never writes a
// default config file of its own.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{configPath: path}
	if path == "" {
		return cfg, nil
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	cfg.ini = iniFile
	return cfg, nil
}

// GetFingerprintConfig returns the fingerprint configuration.
func (c *Config) GetFingerprintConfig() *FingerprintConfig {
	fingerprintConfig := &FingerprintConfig{
		Buffer: DefaultChunkSize, // fallback default
	}

	if c.ini != nil && c.ini.HasSection("fingerprint") {
		section := c.ini.Section("fingerprint")
		if section.HasKey("buffer") {
			if size, err := ParseByteSize(section.Key("buffer").String()); err == nil && size > 0 {
				fingerprintConfig.Buffer = size
			}
		}
	}

	return fingerprintConfig
}

// GetVerboseConfig returns the verbosity configuration.
func (c *Config) GetVerboseConfig() *VerboseConfig {
	verboseConfig := &VerboseConfig{
		Level: 0,  // fallback default
		Debug: "", // fallback default
	}

	if c.ini != nil && c.ini.HasSection("verbose") {
		section := c.ini.Section("verbose")
		if section.HasKey("level") {
			if level, err := section.Key("level").Int(); err == nil {
				verboseConfig.Level = level
			}
		}
		if section.HasKey("debug") {
			verboseConfig.Debug = section.Key("debug").String()
		}
	}

	return verboseConfig
}

// GetIgnoreConfig returns the ignore-pattern configuration.
func (c *Config) GetIgnoreConfig() *IgnoreConfig {
	ignoreConfig := &IgnoreConfig{
		Patterns: "", // fallback default: nothing ignored
	}

	if c.ini != nil && c.ini.HasSection("ignore") {
		section := c.ini.Section("ignore")
		if section.HasKey("patterns") {
			ignoreConfig.Patterns = section.Key("patterns").String()
		}
	}

	return ignoreConfig
}
