package logger

import (
	"Portfolio/internal/api/config"
	"fmt"
	"io"
	log "log/slog"
	"os"
	"strings"
)

// LogWriter gin 访问日志的输出目标
var LogWriter io.Writer = os.Stdout

func InitLogger(cfg config.LogConfig) error {
	opts := &log.HandlerOptions{Level: parseLevel(cfg.Level)}
	hStdout := log.NewJSONHandler(os.Stdout, opts)

	var finalHandler log.Handler = hStdout

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		finalHandler = &TeeHandler{
			handlers: []log.Handler{hStdout, log.NewJSONHandler(f, opts)},
		}
		LogWriter = io.MultiWriter(os.Stdout, f)
	}

	logger := log.New(&ContextHandler{finalHandler})
	log.SetDefault(logger)
	return nil
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
