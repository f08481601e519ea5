package logger_adapter

import (
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/beyondeth/shop/internal/core/port"

	"github.com/lmittmann/tint"
)

// SlogAdapter реализует LoggerPort поверх slog.
type SlogAdapter struct {
	logger *slog.Logger
}

type SlogConfig struct {
	// Writer - куда писать логи, по умолчанию os.Stdout
	Writer    io.Writer
	Level     slog.Leveler
	AddSource bool
	// IsJSON - JSON для сбора логов в контейнере, иначе текст
	IsJSON   bool
	UseColor bool
}

func NewSlogAdapter(cfg SlogConfig) port.LoggerPort {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Level == nil {
		cfg.Level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{AddSource: cfg.AddSource, Level: cfg.Level}

	var handler slog.Handler
	switch {
	case cfg.IsJSON:
		handler = slog.NewJSONHandler(cfg.Writer, opts)
	case cfg.UseColor:
		handler = tint.NewHandler(cfg.Writer, &tint.Options{
			Level:      cfg.Level,
			AddSource:  cfg.AddSource,
			TimeFormat: "2006-01-02 15:04:05",
		})
	default:
		handler = slog.NewTextHandler(cfg.Writer, opts)
	}

	return &SlogAdapter{logger: slog.New(handler)}
}

// ParseLevel переводит строку из конфигурации в уровень slog. Неизвестное значение - info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fieldsToAttrs: ключи сортируются, чтобы порядок полей в строке был стабильным
func fieldsToAttrs(fields port.Fields) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	return attrs
}

func (a *SlogAdapter) Info(msg string, fields port.Fields) {
	a.logger.Info(msg, fieldsToAttrs(fields)...)
}

func (a *SlogAdapter) Warn(msg string, fields port.Fields) {
	a.logger.Warn(msg, fieldsToAttrs(fields)...)
}

func (a *SlogAdapter) Error(msg string, err error, fields port.Fields) {
	attrs := fieldsToAttrs(fields)
	if err != nil {
		attrs = append(attrs, tint.Err(err))
	}
	a.logger.Error(msg, attrs...)
}

func (a *SlogAdapter) Debug(msg string, fields port.Fields) {
	a.logger.Debug(msg, fieldsToAttrs(fields)...)
}

func (a *SlogAdapter) WithFields(fields port.Fields) port.LoggerPort {
	return &SlogAdapter{logger: a.logger.With(fieldsToAttrs(fields)...)}
}
