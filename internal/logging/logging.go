// Package logging configures thermod's global zerolog logger,
// grounded on the teacher's internal/logging/logging.go.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger to write structured, timestamped
// JSON lines to logPath (or stdout when logPath is empty) at level.
func Init(level zerolog.Level, logPath string) error {
	var w io.Writer = os.Stdout

	if logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		w = logFile
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	log.Logger = logger

	if level == zerolog.DebugLevel {
		log.Debug().Msg("log level set to debug")
	}
	return nil
}

// ToggleDebug flips the global logger between its configured base
// level and debug, for SIGUSR1 (spec.md §6). Returns the level now in
// effect.
func ToggleDebug(baseLevel zerolog.Level) zerolog.Level {
	next := zerolog.DebugLevel
	if log.Logger.GetLevel() == zerolog.DebugLevel {
		next = baseLevel
	}
	log.Logger = log.Logger.Level(next)
	log.Info().Str("level", next.String()).Msg("log level toggled")
	return next
}
