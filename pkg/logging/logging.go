package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Settings struct {
	Level      string
	File       string
	WithCaller bool
}

// ParseLevel converts a string level into zerolog.Level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled", "off":
		return zerolog.Disabled
	case "info":
		fallthrough
	default:
		return zerolog.InfoLevel
	}
}

// InitFileLogger points the global logger at settings.File. Used while the
// TUI owns the terminal. The returned closer flushes and closes the file.
func InitFileLogger(settings Settings) (io.Closer, error) {
	f, err := os.OpenFile(settings.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %s", settings.File)
	}
	setup(f, settings)
	return f, nil
}

// InitConsoleLogger logs to w, pretty-printed if w is a terminal.
func InitConsoleLogger(w io.Writer, settings Settings) {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}
	setup(w, settings)
}

func setup(w io.Writer, settings Settings) {
	zerolog.SetGlobalLevel(ParseLevel(settings.Level))
	ctx := zerolog.New(w).With().Timestamp().Str("run_id", uuid.NewString())
	if settings.WithCaller {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()
}
