// Package logging builds the file-backed logger. The TUI owns stdout and
// stderr, so everything is written to a log file under the user's config
// directory instead.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DefaultPath returns ~/.collective/collective.log.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".collective", "collective.log"), nil
}

// New builds a sugared zap logger writing to the given file at the given
// level. The parent directory is created if needed.
func New(level, path string) (*zap.SugaredLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Sugar(), nil
}

// Discard returns a logger that drops everything, for tests and for code
// paths that run before configuration is loaded.
func Discard() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
