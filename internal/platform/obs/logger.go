package obs

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds a zerolog logger tagged with the given component. Console
// output is used when format is "console" or APP_ENV is "dev"; JSON otherwise.
func NewLogger(component, level, format string) zerolog.Logger {
	return NewLoggerTo(os.Stdout, component, level, format)
}

func NewLoggerTo(out io.Writer, component, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	w := out
	if strings.EqualFold(format, "console") || strings.EqualFold(os.Getenv("APP_ENV"), "dev") {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Str("component", component).Logger()
}
