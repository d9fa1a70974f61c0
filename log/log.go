// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides the key-value logger used across packages, a thin
// front over slog with geth-flavored leveling.
package log

import (
	"log/slog"
	"os"
)

var (
	level = new(slog.LevelVar)
	root  = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
)

// Logger writes key-value records scoped with a fixed context.
type Logger struct {
	l *slog.Logger
}

// New returns a logger with the given context attached to every record.
func New(ctx ...any) *Logger {
	return &Logger{root.With(ctx...)}
}

func (lg *Logger) Debug(msg string, ctx ...any) { lg.l.Debug(msg, ctx...) }
func (lg *Logger) Info(msg string, ctx ...any)  { lg.l.Info(msg, ctx...) }
func (lg *Logger) Warn(msg string, ctx ...any)  { lg.l.Warn(msg, ctx...) }
func (lg *Logger) Error(msg string, ctx ...any) { lg.l.Error(msg, ctx...) }

// Debug logs at debug level on the root logger.
func Debug(msg string, ctx ...any) { root.Debug(msg, ctx...) }

// Info logs at info level on the root logger.
func Info(msg string, ctx ...any) { root.Info(msg, ctx...) }

// Warn logs at warn level on the root logger.
func Warn(msg string, ctx ...any) { root.Warn(msg, ctx...) }

// Error logs at error level on the root logger.
func Error(msg string, ctx ...any) { root.Error(msg, ctx...) }

// SetVerbosity sets the root log level, 0 (errors only) through 3+ (debug).
func SetVerbosity(v int) {
	switch {
	case v <= 0:
		level.Set(slog.LevelError)
	case v == 1:
		level.Set(slog.LevelWarn)
	case v == 2:
		level.Set(slog.LevelInfo)
	default:
		level.Set(slog.LevelDebug)
	}
}
