// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected log.Level
	}{
		{"debug lowercase", "debug", log.DebugLevel},
		{"debug uppercase", "DEBUG", log.DebugLevel},
		{"verbose", "verbose", log.DebugLevel},
		{"trace", "trace", log.TraceLevel},
		{"info", "info", log.InfoLevel},
		{"warn", "warn", log.WarnLevel},
		{"warning mixed case", "Warning", log.WarnLevel},
		{"error", "ERROR", log.ErrorLevel},
		{"quiet", "quiet", log.FatalLevel},
		{"silent", "silent", log.FatalLevel},
		{"padded", "  debug ", log.DebugLevel},
		{"empty string", "", log.InfoLevel},
		{"unknown", "foobar", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", "json", &buf)

	logger.WithField("topic", "llm agents").Info("searching arXiv")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "searching arXiv", entry["msg"])
	assert.Equal(t, "llm agents", entry["topic"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_TextFormatRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("warn", "text", &buf)

	logger.Info("hidden")
	logger.WithField("topic", "x").Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "topic=x")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Info("nothing")
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
}
