// Package logging builds the zerolog.Logger shared by the container and the
// application kernel from config.LogConfig.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/km-arc/go-container/framework/config"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New creates a logger writing to stdout. service is attached as the
// "service" field.
func New(cfg config.LogConfig, service string) zerolog.Logger {
	return NewWriter(cfg, service, os.Stdout)
}

// NewWriter is New with an explicit output.
//
// Unknown levels fall back to info. The level is set on the returned logger,
// the global zerolog level is left alone.
func NewWriter(cfg config.LogConfig, service string, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if strings.ToLower(cfg.Format) == FormatConsole {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
			NoColor:    !isTerminal(out),
		}
	}

	ctx := zerolog.New(out).Level(level).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if service != "" {
		ctx = ctx.Str("service", service)
	}
	return ctx.Logger()
}

// Nop returns a disabled logger.
func Nop() zerolog.Logger { return zerolog.Nop() }

// Component tags logger with a component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
