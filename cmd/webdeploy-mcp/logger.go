// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"log/slog"
	"strings"
)

// setupLogger builds a text logger at the named level and makes it the
// default. Unknown levels fall back to info with a warning.
func setupLogger(w io.Writer, levelName string) *slog.Logger {
	var level slog.Level
	known := true
	switch strings.ToLower(levelName) {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
		known = false
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	if !known {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", levelName,
			"default_level", "info")
	}
	slog.SetDefault(logger)
	return logger
}
