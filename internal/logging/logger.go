// Package logging configures charmbracelet/log loggers for fmtsubst and
// carries them through contexts.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // process-wide default, swapped by the CLI
var defaultLogger atomic.Pointer[log.Logger]

// Default returns the process-wide logger. It writes to stderr at info
// level until SetDefault replaces it.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}

// ParseLevel maps a level name to a log.Level. Names are case-insensitive;
// "warning" is accepted for "warn" and anything unknown means info.
func ParseLevel(level string) log.Level {
	level = strings.ToLower(level)
	if level == "warning" {
		return log.WarnLevel
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}

// New returns a stderr logger at the given level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger writing logfmt-style lines to w.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// NewInteractive returns a stdout logger for output meant for the user,
// such as the rules listing. Level labels are hidden.
func NewInteractive() *log.Logger {
	return NewInteractiveWithWriter(os.Stdout)
}

// NewInteractiveWithWriter is NewInteractive writing to w.
func NewInteractiveWithWriter(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Level:     log.InfoLevel,
		Formatter: log.TextFormatter,
	})

	styles := log.DefaultStyles()
	for level, style := range styles.Levels {
		styles.Levels[level] = style.SetString("")
	}
	logger.SetStyles(styles)
	return logger
}

type loggerKey struct{}

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger attached to ctx, or Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}
