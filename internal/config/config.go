// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads arxiv-digest settings.
//
// Precedence, highest first: process environment, the .env file, the
// optional YAML config file, built-in defaults. Keys are matched
// case-insensitively (ARXIV_MAX_RESULTS and arxiv_max_results are the same
// key) and unknown keys are ignored.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// DefaultEnvFile is the dotenv file read when Options.EnvFile is empty.
const DefaultEnvFile = ".env"

// Options selects the files Load reads.
type Options struct {
	// ConfigFile is an optional YAML file. Empty means none.
	ConfigFile string

	// EnvFile is the dotenv file (default ".env"). A missing file is not an error.
	EnvFile string
}

// Defaults returns the built-in settings.
func Defaults() types.Settings {
	return types.Settings{
		ArxivMaxResults:   types.DefaultMaxResults,
		ArxivDelaySeconds: types.DefaultDelaySeconds,
		ArxivHoursBack:    types.DefaultHoursBack,
		ArxivUserAgent:    "arxiv-digest/0.1 (+https://github.com/pdiddy/arxiv-digest)",
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// Load reads settings according to opts.
func Load(opts Options) (types.Settings, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	// godotenv never overrides variables already set in the environment.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return types.Settings{}, fmt.Errorf("loading %s: %w", envFile, err)
	}

	v := viper.New()
	d := Defaults()
	v.SetDefault("arxiv_max_results", d.ArxivMaxResults)
	v.SetDefault("arxiv_delay_seconds", d.ArxivDelaySeconds)
	v.SetDefault("arxiv_hours_back", d.ArxivHoursBack)
	v.SetDefault("arxiv_user_agent", d.ArxivUserAgent)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return types.Settings{}, fmt.Errorf("reading config file %s: %w", opts.ConfigFile, err)
		}
	}

	var s types.Settings
	if err := v.Unmarshal(&s); err != nil {
		return types.Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if err := Validate(s); err != nil {
		return types.Settings{}, err
	}
	return s, nil
}

// Validate rejects settings the fetcher cannot run with.
func Validate(s types.Settings) error {
	var errs []error
	if s.ArxivMaxResults <= 0 {
		errs = append(errs, fmt.Errorf("arxiv_max_results must be positive, got %d", s.ArxivMaxResults))
	}
	if s.ArxivDelaySeconds < 0 {
		errs = append(errs, fmt.Errorf("arxiv_delay_seconds must not be negative, got %g", s.ArxivDelaySeconds))
	}
	if s.ArxivHoursBack <= 0 {
		errs = append(errs, fmt.Errorf("arxiv_hours_back must be positive, got %d", s.ArxivHoursBack))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}
