// Package logger builds the bracket-prefixed standard loggers used across the
// client tools.
package logger

import (
	"io"
	"log"
	"os"
)

// Logger is an alias used by components for dependency injection.
type Logger = log.Logger

// New returns a standard logger with a consistent component prefix.
func New(component string) *Logger {
	return NewTo(os.Stdout, component)
}

// NewTo is New writing to w.
func NewTo(w io.Writer, component string) *Logger {
	return log.New(w, "["+component+"] ", log.LstdFlags|log.Lmicroseconds|log.LUTC)
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return log.New(io.Discard, "", 0)
}
