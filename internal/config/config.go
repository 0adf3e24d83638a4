package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds everything the client and CLI need to talk to ClinchPad.
type Config struct {
	API APIConfig `koanf:"api"`
	Log LogConfig `koanf:"log"`
}

type APIConfig struct {
	Key        string `koanf:"key"`
	BaseURL    string `koanf:"base_url"`
	NoteAuthor string `koanf:"note_author"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// Load reads configuration from an optional YAML file and from
// CLINCHPAD_* environment variables, with the environment taking
// precedence over the file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// CLINCHPAD_API_KEY -> api.key, CLINCHPAD_LOG_LEVEL -> log.level
	if err := k.Load(env.Provider("CLINCHPAD_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "CLINCHPAD_")), "_", ".", 1)
	}), nil); err != nil {
		return nil, err
	}

	// Default values
	if !k.Exists("api.base_url") {
		k.Set("api.base_url", "https://www.clinchpad.com/api/v1")
	}
	if !k.Exists("log.level") {
		k.Set("log.level", "info")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.API.Key == "" {
		return errors.New("api key is required (set CLINCHPAD_API_KEY)")
	}
	return nil
}

// DefaultPath returns the config file loaded when none is given on the
// command line: clinchpad.yaml in the working directory, if present.
func DefaultPath() string {
	const name = "clinchpad.yaml"
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return ""
}
