package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var (
	base     atomic.Pointer[zerolog.Logger]
	initOnce sync.Once
)

type ctxKey struct{}

// Init configures the global JSON logger.
//
// Environment variables (optional):
//   - LOG_LEVEL: debug|info|warn|error (default: info)
//   - LOG_PRETTY: true|false (default: false)
func Init() {
	InitWriter(os.Stdout)
}

// InitWriter is Init with log lines written to out instead of stdout.
func InitWriter(out io.Writer) {
	level := parseLevel(getenv("LOG_LEVEL", "info"))
	pretty := strings.EqualFold(getenv("LOG_PRETTY", "false"), "true")

	zerolog.TimeFieldFormat = time.RFC3339Nano
	w := out
	if pretty {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	l := zerolog.New(w).With().Timestamp().Logger().Level(level)
	base.Store(&l)
}

// L returns the global logger. Call Init() once on startup; until then the
// first caller initializes it with the defaults, exactly once.
func L() *zerolog.Logger {
	if l := base.Load(); l != nil {
		return l
	}
	initOnce.Do(func() {
		if base.Load() == nil {
			Init()
		}
	})
	return base.Load()
}

// Component returns a child of the global logger tagged with component=name.
func Component(name string) zerolog.Logger {
	return L().With().Str("component", name).Logger()
}

// WithRequestID stores a request id on ctx so outbound calls and log lines
// made on behalf of the request can carry it.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Ctx returns l enriched with the request id found on ctx, if any.
func Ctx(ctx context.Context, l zerolog.Logger) zerolog.Logger {
	if id := RequestID(ctx); id != "" {
		return l.With().Str("request_id", id).Logger()
	}
	return l
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
