// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Built-in defaults for a topic search.
const (
	DefaultMaxResults   = 30
	DefaultDelaySeconds = 3.0
	DefaultHoursBack    = 24
)

// FetchConfig holds the per-run search parameters. A zero field means
// "not set" and is filled by Resolve or by the fetcher's defaults.
type FetchConfig struct {
	// MaxResults is the maximum number of results requested per topic.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Delay is the minimum pause between two arXiv API requests.
	Delay time.Duration `json:"delay" yaml:"delay"`

	// HoursBack is the recency window; older papers are dropped.
	HoursBack int `json:"hours_back" yaml:"hours_back"`
}

// Resolve returns c with every unset field taken from base.
func (c FetchConfig) Resolve(base FetchConfig) FetchConfig {
	if c.MaxResults <= 0 {
		c.MaxResults = base.MaxResults
	}
	if c.Delay <= 0 {
		c.Delay = base.Delay
	}
	if c.HoursBack <= 0 {
		c.HoursBack = base.HoursBack
	}
	return c
}

// WithDefaults fills unset fields from the built-in defaults.
func (c FetchConfig) WithDefaults() FetchConfig {
	return c.Resolve(FetchConfig{
		MaxResults: DefaultMaxResults,
		Delay:      SecondsToDuration(DefaultDelaySeconds),
		HoursBack:  DefaultHoursBack,
	})
}

// Window returns HoursBack as a duration.
func (c FetchConfig) Window() time.Duration {
	return time.Duration(c.HoursBack) * time.Hour
}

// Settings is the process-wide configuration loaded from defaults, an
// optional config file, a .env file and the environment.
type Settings struct {
	// ArxivMaxResults is the default number of results requested per topic.
	ArxivMaxResults int `mapstructure:"arxiv_max_results" json:"arxiv_max_results" yaml:"arxiv_max_results"`

	// ArxivDelaySeconds is the default pause between arXiv API requests.
	ArxivDelaySeconds float64 `mapstructure:"arxiv_delay_seconds" json:"arxiv_delay_seconds" yaml:"arxiv_delay_seconds"`

	// ArxivHoursBack is the default recency window in hours.
	ArxivHoursBack int `mapstructure:"arxiv_hours_back" json:"arxiv_hours_back" yaml:"arxiv_hours_back"`

	// ArxivUserAgent is sent with every arXiv API request.
	ArxivUserAgent string `mapstructure:"arxiv_user_agent" json:"arxiv_user_agent" yaml:"arxiv_user_agent"`

	// LogLevel selects the logger verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level" json:"log_level" yaml:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `mapstructure:"log_format" json:"log_format" yaml:"log_format"`
}

// FetchConfig converts the arXiv settings into search parameters.
func (s Settings) FetchConfig() FetchConfig {
	return FetchConfig{
		MaxResults: s.ArxivMaxResults,
		Delay:      SecondsToDuration(s.ArxivDelaySeconds),
		HoursBack:  s.ArxivHoursBack,
	}
}

// SecondsToDuration converts fractional seconds to a time.Duration.
func SecondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
