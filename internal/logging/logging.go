// Package logging builds the zerolog loggers used by the rowsummary CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a logger writing to out. Console output is used when Format
// is "console", or when it is empty and out is a terminal.
func New(cfg Config, out io.Writer) (zerolog.Logger, error) {
	if out == nil {
		out = os.Stderr
	}

	level := zerolog.WarnLevel
	if trimmed := strings.TrimSpace(cfg.Level); trimmed != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(trimmed))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("logging: parse level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	format := strings.ToLower(strings.TrimSpace(cfg.Format))
	switch format {
	case "":
		if isTerminal(out) {
			format = FormatConsole
		} else {
			format = FormatJSON
		}
	case FormatConsole, FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("logging: unknown format %q", cfg.Format)
	}

	if format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// WithComponent tags logger entries with a component name.
func WithComponent(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
