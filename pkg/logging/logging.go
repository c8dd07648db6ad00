// Package logging builds the zap logger used across the agent.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 5
	maxLogBackups = 5
	maxLogAgeDays = 14
)

type Config struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File switches output from stderr to a rotated log file.
	File string `yaml:"file"`
}

// New returns a logger at the configured level. Format "console" gives
// human-readable lines; anything else is JSON.
func New(config Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(config.Level)))
	if err != nil {
		level = zapcore.WarnLevel
	}
	if strings.TrimSpace(config.Level) == "" {
		level = zapcore.WarnLevel
	}

	var encoder zapcore.Encoder
	if strings.EqualFold(strings.TrimSpace(config.Format), "console") {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	sink := zapcore.Lock(os.Stderr)
	if path := strings.TrimSpace(config.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return zap.NewNop(), err
		}
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
			Compress:   true,
		})
	}

	core := zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(level))
	return zap.New(core, zap.AddCaller()), nil
}
