// Package logging configures the zerolog loggers shared by the visualizer
// packages and the dsviz CLI.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	writer io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	base             = zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.ErrorLevel)
)

// Configure sets the level of every logger handed out afterwards. Unknown
// level names fall back to error.
func Configure(level string) zerolog.Level {
	lvl := ParseLevel(level)
	mu.Lock()
	defer mu.Unlock()
	ctx := zerolog.New(writer).With().Timestamp()
	if lvl <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	base = ctx.Logger().Level(lvl)
	return lvl
}

// SetWriter redirects log output. Tests use it to capture records.
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	writer = w
	base = base.Output(w)
}

// ParseLevel converts a level name to a zerolog.Level, defaulting to error.
func ParseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.ErrorLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.ErrorLevel
	}
	return lvl
}

// Component returns a logger tagged with the component name.
func Component(name string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With().Str("component", name).Logger()
}
