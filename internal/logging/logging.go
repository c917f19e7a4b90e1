package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Level works out the log level. Each -v steps the level down from warn; without any the
// configured level name is used.
func Level(name string, verbosity int) zerolog.Level {
	switch {
	case verbosity >= 3:
		return zerolog.TraceLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	}

	switch strings.ToUpper(name) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// New builds the console logger used everywhere. Output goes to w, normally stderr, so it
// never mixes with the results on stdout.
func New(w io.Writer, name string, verbosity int, color bool) zerolog.Logger {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}
	return zerolog.New(out).Level(Level(name, verbosity)).With().Timestamp().Logger()
}
