// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the structured logger shared by the CLI and the fetcher.
package logging

import (
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Log formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ParseLevel maps a level name to a logrus level. It accepts the standard
// names plus "verbose" (debug) and "quiet"/"silent" (fatal only). Unknown
// names fall back to info.
func ParseLevel(name string) log.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return log.TraceLevel
	case "debug", "verbose":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "quiet", "silent":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// New returns a logger writing to w at the given level. format is "json"
// or "text"; anything else selects text.
func New(level, format string, w io.Writer) *log.Logger {
	logger := log.New()
	logger.SetOutput(w)
	logger.SetLevel(ParseLevel(level))

	if strings.EqualFold(strings.TrimSpace(format), FormatJSON) {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			DisableColors:   true,
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}
	return logger
}

// Discard returns a logger that drops every entry.
func Discard() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}
