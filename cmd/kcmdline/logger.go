package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/shibukawa/kcmdline"
	"github.com/shibukawa/kcmdline/cmdline"
)

// resolveLevel picks the log level: -v and -q win over --log-level, which
// wins over the config file.
func resolveLevel(cli *CLI, config *kcmdline.Config) (slog.Level, error) {
	switch {
	case cli.Verbose:
		return slog.LevelDebug, nil
	case cli.Quiet:
		return slog.LevelError, nil
	}

	name := cli.LogLevel
	if name == "" {
		name = config.LogLevel
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("%w: '%s'", ErrInvalidLogLevel, name)
	}

	return level, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    color.NoColor,
	}))
}

// logDiagnostics reports tokens that had no effect. Unknown names are
// normal on real command lines; bad values usually are typos.
func logDiagnostics(logger *slog.Logger, name string, diagnostics []cmdline.Diagnostic) {
	for _, d := range diagnostics {
		attrs := []any{"token", d.Token, "offset", d.Offset}
		if name != "" {
			attrs = append(attrs, "source", name)
		}

		switch d.Kind {
		case cmdline.InvalidValue, cmdline.IgnoredValue:
			logger.Warn(d.Kind.String(), attrs...)
		default:
			logger.Debug(d.Kind.String(), attrs...)
		}
	}
}
