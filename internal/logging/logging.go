// Package logging builds the service slog.Logger from configuration.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"ads-dashboard/internal/config/configs"
)

// New returns a logger writing text or JSON records to stdout, or to a
// rotating file when cfg.File is set. The returned closer releases the
// file and is a no-op for stdout.
func New(cfg configs.Logger, env string) (*slog.Logger, io.Closer) {
	var (
		out    io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		out, closer = rotating, rotating
	}
	return slog.New(NewHandler(out, cfg)).With(slog.String("env", env)), closer
}

// NewHandler picks the slog handler for cfg.Format.
func NewHandler(w io.Writer, cfg configs.Logger) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	switch cfg.SlogFormat() {
	case "json":
		return slog.NewJSONHandler(w, opts)
	default:
		return slog.NewTextHandler(w, opts)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
