// Package verbosity implements the CLI's leveled logger: silent by default,
// -v prints one line per major phase, -d additionally prints per-obligation
// detail. Grounded on cmd/gini/main.go's use of the stdlib log package
// directly (log.SetPrefix, gated log.Printf calls) — the teacher never
// reaches for a logging library even in its CLI entry point, so none is
// introduced here.
package verbosity

import (
	"io"
	"log"
)

// Level is one of the three CLI verbosity tiers.
type Level int

const (
	Silent Level = iota
	Loud
	Debug
)

// Logger gates log.Printf-style output by the configured Level.
type Logger struct {
	level Level
	log   *log.Logger
}

// New creates a Logger writing to w with the given prefix, matching the
// teacher's log.SetPrefix("c [gini] ") convention.
func New(w io.Writer, prefix string, level Level) *Logger {
	return &Logger{level: level, log: log.New(w, prefix, 0)}
}

// Verbosef prints at Loud and above.
func (l *Logger) Verbosef(format string, args ...interface{}) {
	if l.level >= Loud {
		l.log.Printf(format, args...)
	}
}

// Debugf prints only at Debug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.level >= Debug {
		l.log.Printf(format, args...)
	}
}
