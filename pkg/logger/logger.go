package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

func New(env, service string) zerolog.Logger {
	return NewWithWriter(env, service, os.Stdout)
}

// NewWithWriter builds the process logger on w. dev gets human-readable
// console output at debug level, everything else JSON at info.
func NewWithWriter(env, service string, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	if env == "dev" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	l := zerolog.New(w).With().Timestamp().Str("service", service).Logger()
	if env == "dev" {
		l = l.Level(zerolog.DebugLevel)
	} else {
		l = l.Level(zerolog.InfoLevel)
	}
	return l
}
