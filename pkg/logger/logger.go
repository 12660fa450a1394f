package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls logger construction from the environment.
type Config struct {
	Level   string `env:"LOG_LEVEL" envDefault:"info"`   // debug, info, warn, error
	Format  string `env:"LOG_FORMAT" envDefault:"json"`  // json or text
	Service string `env:"LOG_SERVICE" envDefault:"auth"` // static service attribute
}

type options struct {
	output io.Writer
	attrs  []slog.Attr
}

// Option adjusts logger construction beyond what Config carries.
type Option func(*options)

// WithOutput redirects log output; nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithAttr attaches static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// New builds a slog.Logger from cfg. Unknown levels fall back to info and
// unknown formats to JSON so a typo in the environment never kills startup.
func New(cfg Config, opts ...Option) *slog.Logger {
	o := &options{output: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	handlerOpts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(o.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(o.output, handlerOpts)
	}

	attrs := o.attrs
	if cfg.Service != "" {
		attrs = append(attrs, slog.String("service", cfg.Service))
	}
	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops everything, the default for library
// components until the caller injects a real one.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
