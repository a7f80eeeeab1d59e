// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

var envKeys = []string{
	"ARXIV_MAX_RESULTS", "ARXIV_DELAY_SECONDS", "ARXIV_HOURS_BACK",
	"ARXIV_USER_AGENT", "LOG_LEVEL", "LOG_FORMAT", "DATABASE_URL",
}

// isolateEnv unsets every variable the tests touch for the duration of the test.
// godotenv writes with os.Setenv, so registering each key through t.Setenv
// first makes the cleanup restore the original environment.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolateEnv(t)

	s, err := Load(Options{EnvFile: noEnvFile(t)})
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
	assert.Equal(t, 30, s.ArxivMaxResults)
	assert.Equal(t, 3.0, s.ArxivDelaySeconds)
	assert.Equal(t, 24, s.ArxivHoursBack)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("ARXIV_MAX_RESULTS", "50")
	t.Setenv("ARXIV_DELAY_SECONDS", "1.5")
	t.Setenv("ARXIV_HOURS_BACK", "48")
	t.Setenv("LOG_LEVEL", "debug")

	s, err := Load(Options{EnvFile: noEnvFile(t)})
	require.NoError(t, err)
	assert.Equal(t, 50, s.ArxivMaxResults)
	assert.Equal(t, 1.5, s.ArxivDelaySeconds)
	assert.Equal(t, 48, s.ArxivHoursBack)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoad_DotEnvFile(t *testing.T) {
	isolateEnv(t)
	envFile := writeFile(t, ".env", `# arXiv settings
ARXIV_MAX_RESULTS=10
ARXIV_HOURS_BACK=72
DATABASE_URL=postgresql://localhost:5432/arxiv_digest
`)

	s, err := Load(Options{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, 10, s.ArxivMaxResults)
	assert.Equal(t, 72, s.ArxivHoursBack)
	assert.Equal(t, 3.0, s.ArxivDelaySeconds)
}

func TestLoad_EnvironmentBeatsDotEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("ARXIV_MAX_RESULTS", "99")
	envFile := writeFile(t, ".env", "ARXIV_MAX_RESULTS=10\n")

	s, err := Load(Options{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, 99, s.ArxivMaxResults)
}

func TestLoad_ConfigFile(t *testing.T) {
	isolateEnv(t)
	cfgFile := writeFile(t, "arxiv-digest.yaml", `arxiv_max_results: 12
arxiv_delay_seconds: 0.5
log_format: json
unknown_key: ignored
`)

	s, err := Load(Options{ConfigFile: cfgFile, EnvFile: noEnvFile(t)})
	require.NoError(t, err)
	assert.Equal(t, 12, s.ArxivMaxResults)
	assert.Equal(t, 0.5, s.ArxivDelaySeconds)
	assert.Equal(t, 24, s.ArxivHoursBack)
	assert.Equal(t, "json", s.LogFormat)
}

func TestLoad_EnvironmentBeatsConfigFile(t *testing.T) {
	isolateEnv(t)
	t.Setenv("ARXIV_HOURS_BACK", "6")
	cfgFile := writeFile(t, "arxiv-digest.yaml", "arxiv_hours_back: 12\n")

	s, err := Load(Options{ConfigFile: cfgFile, EnvFile: noEnvFile(t)})
	require.NoError(t, err)
	assert.Equal(t, 6, s.ArxivHoursBack)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	isolateEnv(t)
	_, err := Load(Options{
		ConfigFile: filepath.Join(t.TempDir(), "nope.yaml"),
		EnvFile:    noEnvFile(t),
	})
	assert.Error(t, err)
}

func TestLoad_InvalidValue(t *testing.T) {
	isolateEnv(t)
	t.Setenv("ARXIV_HOURS_BACK", "-1")

	_, err := Load(Options{EnvFile: noEnvFile(t)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arxiv_hours_back")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.Settings)
		wantErr string
	}{
		{"defaults valid", func(*types.Settings) {}, ""},
		{"zero delay valid", func(s *types.Settings) { s.ArxivDelaySeconds = 0 }, ""},
		{"zero max results", func(s *types.Settings) { s.ArxivMaxResults = 0 }, "arxiv_max_results"},
		{"negative delay", func(s *types.Settings) { s.ArxivDelaySeconds = -1 }, "arxiv_delay_seconds"},
		{"zero hours back", func(s *types.Settings) { s.ArxivHoursBack = 0 }, "arxiv_hours_back"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.mutate(&s)
			err := Validate(s)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
