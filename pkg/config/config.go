// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// DefaultFilenames are looked up, in order, when no config path is given
var DefaultFilenames = []string{
	".extnrc.yaml",
	".extnrc.yml",
	".extnrc.hcl",
	".extnrc.json",
	".extnrc.toml",
}

// 📚 Config represents the complete configuration
type Config struct {
	// Aliases adds command aliases on top of the built-in ones, keyed by command name
	Aliases map[string][]string `json:"aliases,omitempty" yaml:"aliases,omitempty" toml:"aliases,omitempty"`
	// DefaultPatterns is used by toggle-between when no files are given
	DefaultPatterns []string `json:"default_patterns,omitempty" yaml:"default_patterns,omitempty" toml:"default_patterns,omitempty"`
	// SkipPreflight applies renames without checking the plan for collisions
	SkipPreflight bool `json:"skip_preflight,omitempty" yaml:"skip_preflight,omitempty" toml:"skip_preflight,omitempty"`
	// Verbose prints every rename
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty" toml:"verbose,omitempty"`

	location string
}

// 🏭 Default returns the configuration used when no file is found
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// Location is the file the config was read from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	cfg.location = path

	return cfg, nil
}

// 🔍 Discover loads the first of DefaultFilenames found in dir, or the
// defaults when there is none.
func Discover(ctx context.Context, dir string) (*Config, error) {
	for _, name := range DefaultFilenames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		return Load(ctx, path)
	}

	zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("no config file found, using defaults")

	return Default(), nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	owner := map[string]string{}
	for command, aliases := range cfg.Aliases {
		if strings.TrimSpace(command) == "" {
			return errors.Errorf("aliases: command name is required")
		}
		for _, alias := range aliases {
			if strings.TrimSpace(alias) == "" || strings.ContainsAny(alias, " \t") {
				return errors.Errorf("aliases.%s: invalid alias %q", command, alias)
			}
			if other, ok := owner[alias]; ok && other != command {
				return errors.Errorf("aliases: %q is used by both %s and %s", alias, other, command)
			}
			owner[alias] = command
		}
	}

	for _, pattern := range cfg.DefaultPatterns {
		if strings.TrimSpace(pattern) == "" {
			return errors.Errorf("default_patterns: empty pattern")
		}
	}

	// Set defaults
	if len(cfg.DefaultPatterns) == 0 {
		cfg.DefaultPatterns = []string{"*"}
	}

	return nil
}
