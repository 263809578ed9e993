package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk startup configuration for ktermdemo, loaded the
// way dcosson-h2's internal/config package loads its agent config: a
// single YAML file, missing-file falls back to defaults rather than
// erroring.
type Config struct {
	Shell      string `yaml:"shell"`
	Scrollback int    `yaml:"scrollback"`
	LogLevel   string `yaml:"log_level"`
}

// DefaultConfig returns ktermdemo's built-in defaults.
func DefaultConfig() Config {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	return Config{Shell: shell, Scrollback: 1000, LogLevel: "warning"}
}

// LoadConfig reads path as YAML, falling back to DefaultConfig when the
// file doesn't exist.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
