/*
Package config manages the TOML config for anafind.

The file lives at <config dir>/anafind/config.toml and is created with
defaults on first use:

	[dict]
	path = "/usr/share/dict/words"

	[query]
	min_length = 3

	[server]
	max_pattern = 64
	max_results = 0

	[http]
	addr = ":8080"

A file that fails to decode is recovered section by section; keys that are
missing or have the wrong type keep their defaults.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/anafind/internal/utils"
	"github.com/bastiangx/anafind/pkg/dictionary"
	"github.com/bastiangx/anafind/pkg/index"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Dict   DictConfig   `toml:"dict"`
	Query  QueryConfig  `toml:"query"`
	Server ServerConfig `toml:"server"`
	HTTP   HTTPConfig   `toml:"http"`
}

// DictConfig points at the word list.
type DictConfig struct {
	Path string `toml:"path"`
}

// QueryConfig holds query defaults.
type QueryConfig struct {
	MinLength int `toml:"min_length"`
}

// ServerConfig limits requests served over IPC and HTTP.
type ServerConfig struct {
	MaxPattern int `toml:"max_pattern"`
	MaxResults int `toml:"max_results"`
}

// HTTPConfig holds the HTTP listener options.
type HTTPConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Dict: DictConfig{
			Path: dictionary.DefaultWordsPath,
		},
		Query: QueryConfig{
			MinLength: index.DefaultMinLength,
		},
		Server: ServerConfig{
			MaxPattern: 64,
			MaxResults: 0,
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
	}
}

// Validate rejects values no query could work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Dict.Path == "" {
		errs = append(errs, errors.New("dict.path must not be empty"))
	}
	if c.Query.MinLength < 0 {
		errs = append(errs, fmt.Errorf("query.min_length must be >= 0, got %d", c.Query.MinLength))
	}
	if c.Server.MaxPattern < 1 {
		errs = append(errs, fmt.Errorf("server.max_pattern must be >= 1, got %d", c.Server.MaxPattern))
	}
	if c.Server.MaxResults < 0 {
		errs = append(errs, fmt.Errorf("server.max_results must be >= 0, got %d", c.Server.MaxResults))
	}
	return errors.Join(errs...)
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() string {
	return filepath.Join(utils.ConfigDir(), "config.toml")
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from the -config flag
// 2. Default path: [ConfigDir]/anafind/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath := GetDefaultConfigPath()
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), ""
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	if !utils.IsWritableDir(filepath.Dir(configPath)) && !utils.FileExists(configPath) {
		log.Warnf("Config directory for %s is not writable. Using built-in defaults...", configPath)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig decodes a TOML file over the defaults. Invalid values are an
// error; a file that does not decode falls back to partial recovery.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.DecodeTOMLFile(configPath, config); err != nil {
		config = tryPartialParse(configPath)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return config, nil
}

// tryPartialParse keeps every well-typed key it can find.
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	tables, err := utils.DecodeTOMLSections(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}

	if section, ok := utils.Section(tables, "dict"); ok {
		if val, ok := utils.String(section, "path"); ok {
			config.Dict.Path = val
		}
	}
	if section, ok := utils.Section(tables, "query"); ok {
		if val, ok := utils.Int(section, "min_length"); ok {
			config.Query.MinLength = val
		}
	}
	if section, ok := utils.Section(tables, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.Section(tables, "http"); ok {
		if val, ok := utils.String(section, "addr"); ok {
			config.HTTP.Addr = val
		}
	}
	return config
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.Int(data, "max_pattern"); ok {
		server.MaxPattern = val
	}
	if val, ok := utils.Int(data, "max_results"); ok {
		server.MaxResults = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		return err
	}
	return utils.SaveTOMLFile(config, configPath)
}

// ActivePath returns the absolute path of the loaded config file.
func ActivePath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.AbsPath(configPath)
}
