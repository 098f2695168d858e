package engine

import (
	"log/slog"
	"os"
)

// logLevel controls the level of the default engine logger.
// It starts at LevelInfo unless EMBER_DEBUG=1 is set in the environment.
var logLevel = new(slog.LevelVar)

func init() {
	if os.Getenv("EMBER_DEBUG") == "1" {
		logLevel.Set(slog.LevelDebug)
	}
}

// SetVerbose enables or disables debug logging on the default logger.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// Verbose reports whether debug logging is enabled.
func Verbose() bool {
	return logLevel.Level() <= slog.LevelDebug
}

// defaultLogger is used by contexts created without WithLogger.
var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
