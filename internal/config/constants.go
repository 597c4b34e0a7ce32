// Package config holds ambient settings for the Mandalang engine: limits
// shared by the parser and type solver, REPL behavior, and the on-disk
// Config file loaded via LoadFile.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the current Mandalang engine version.
var Version = "0.1.0"

// MaxFunctionParameters mirrors composite_type::max_function_parameters:
// a function type's parameter list is stored in a fixed-size array.
const MaxFunctionParameters = 16

// MaxREPLLineLength caps a single line read from interactive input.
const MaxREPLLineLength = 4096

// IsTestMode indicates if the program is running in test mode.
// This is set once at startup in cmd/mandalang/main.go when handling a
// test flag.
var IsTestMode = false

// Config is the optional on-disk configuration for cmd/mandalang.
type Config struct {
	// PromptPrefix is printed before each REPL line when input is a TTY.
	PromptPrefix string `yaml:"prompt_prefix"`
	// HistoryFile, when set, is where accepted definitions are persisted
	// across restarts via internal/mdstore.
	HistoryFile string `yaml:"history_file"`
	// EchoResults controls whether evaluated values are printed.
	EchoResults bool `yaml:"echo_results"`
}

// DefaultConfig is used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		PromptPrefix: "mandalang> ",
		EchoResults:  true,
	}
}

// LoadFile reads a YAML configuration file at path, falling back to
// DefaultConfig for any field left unset in the file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
