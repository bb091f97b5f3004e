package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	// Logger contains the config items for logger
	Logger struct {
		// Stdout is true then the output needs to goto standard out
		// By default this is false and output will go to standard error
		Stdout bool `yaml:"stdout"`
		// Level is one of debug, info, warn, error or fatal. Default is "info".
		Level string `yaml:"level"`
		// OutputFile is the path to the log output file
		// Stdout must be false, otherwise Stdout will take precedence
		OutputFile string `yaml:"outputFile"`
		// LevelKey is the desired log level, defaults to "level"
		LevelKey string `yaml:"levelKey"`
		// Encoding decides the format, supports "console" and "json".
		// "json" will print the log in JSON format(better for machine), while "console" will print in plain-text format(more human friendly)
		// Default is "json"
		Encoding string `yaml:"encoding"`
	}
)

// NewZapLogger builds and returns a new
// Zap logger for this logging configuration
func (cfg *Logger) NewZapLogger() (*zap.Logger, error) {
	level, err := cfg.zapLevel()
	if err != nil {
		return nil, err
	}
	levelKey := cfg.LevelKey
	if levelKey == "" {
		levelKey = "level"
	}

	encodeConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       levelKey,
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	encoding := "json"
	switch cfg.Encoding {
	case "":
	case "json", "console":
		encoding = cfg.Encoding
	default:
		return nil, fmt.Errorf("invalid encoding %q for log, only supporting json or console", cfg.Encoding)
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         encoding,
		EncoderConfig:    encodeConfig,
		OutputPaths:      []string{cfg.outputPath()},
		ErrorOutputPaths: []string{"stderr"},
	}
	return config.Build()
}

// outputPath is stdout when Stdout is set, then OutputFile, then stderr
func (cfg *Logger) outputPath() string {
	switch {
	case cfg.Stdout:
		return "stdout"
	case cfg.OutputFile != "":
		return cfg.OutputFile
	default:
		return "stderr"
	}
}

// zapLevel defaults to info, unknown levels are rejected
func (cfg *Logger) zapLevel() (zapcore.Level, error) {
	if cfg.Level == "" {
		return zap.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return zap.InfoLevel, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	return level, nil
}
