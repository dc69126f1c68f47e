// Package logging builds the zap logger used across commands and the demo server.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/supacode-demo/internal/config"
)

const (
	FormatConsole            = "console"
	FormatJSON               = "json"
	levelParseErrorFormat    = "parse logging level %q: %w"
	unknownFormatErrorFormat = "unknown logging format %q (expected %s or %s)"
	buildLoggerErrorFormat   = "build logger: %w"
)

// New returns a logger writing to stderr at the configured level and format.
func New(settings config.Logging) (*zap.Logger, error) {
	level, levelErr := zapcore.ParseLevel(strings.TrimSpace(settings.Level))
	if levelErr != nil {
		return nil, fmt.Errorf(levelParseErrorFormat, settings.Level, levelErr)
	}

	var loggerConfiguration zap.Config
	switch strings.ToLower(strings.TrimSpace(settings.Format)) {
	case "", FormatConsole:
		loggerConfiguration = zap.NewDevelopmentConfig()
		loggerConfiguration.Development = false
		loggerConfiguration.DisableStacktrace = true
	case FormatJSON:
		loggerConfiguration = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf(unknownFormatErrorFormat, settings.Format, FormatConsole, FormatJSON)
	}
	loggerConfiguration.Level = zap.NewAtomicLevelAt(level)
	loggerConfiguration.OutputPaths = []string{"stderr"}
	loggerConfiguration.ErrorOutputPaths = []string{"stderr"}

	logger, buildErr := loggerConfiguration.Build()
	if buildErr != nil {
		return nil, fmt.Errorf(buildLoggerErrorFormat, buildErr)
	}
	return logger, nil
}
