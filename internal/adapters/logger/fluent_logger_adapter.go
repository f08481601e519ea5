package logger_adapter

import (
	"errors"
	"log/slog"
	"time"

	"github.com/beyondeth/shop/internal/core/port"
)

// FluentPoster - часть *fluent.Fluent, которой пользуется адаптер.
type FluentPoster interface {
	Post(tag string, message interface{}) error
	Close() error
}

// FluentLoggerAdapter отправляет записи в Fluent Bit, тег - уровень записи.
type FluentLoggerAdapter struct {
	client   FluentPoster
	fields   port.Fields
	minLevel slog.Level
	now      func() time.Time
}

func NewFluentLoggerAdapter(client FluentPoster, minLevel slog.Leveler) (*FluentLoggerAdapter, error) {
	if client == nil {
		return nil, errors.New("fluent client cannot be nil")
	}

	level := slog.LevelInfo
	if minLevel != nil {
		level = minLevel.Level()
	}

	return &FluentLoggerAdapter{
		client:   client,
		fields:   make(port.Fields),
		minLevel: level,
		now:      time.Now,
	}, nil
}

func (a *FluentLoggerAdapter) mergeFields(fields port.Fields) port.Fields {
	merged := make(port.Fields, len(a.fields)+len(fields))
	for k, v := range a.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

func (a *FluentLoggerAdapter) post(level slog.Level, msg string, data port.Fields) {
	if level < a.minLevel {
		return
	}
	tag := map[slog.Level]string{
		slog.LevelDebug: "debug",
		slog.LevelInfo:  "info",
		slog.LevelWarn:  "warn",
		slog.LevelError: "error",
	}[level]

	data["level"] = tag
	data["message"] = msg
	data["timestamp"] = a.now().UTC().Format(time.RFC3339Nano)

	// ошибки отправки игнорируются: логгер не должен ронять запрос
	_ = a.client.Post(tag, data)
}

func (a *FluentLoggerAdapter) Info(msg string, fields port.Fields) {
	a.post(slog.LevelInfo, msg, a.mergeFields(fields))
}

func (a *FluentLoggerAdapter) Warn(msg string, fields port.Fields) {
	a.post(slog.LevelWarn, msg, a.mergeFields(fields))
}

func (a *FluentLoggerAdapter) Error(msg string, err error, fields port.Fields) {
	data := a.mergeFields(fields)
	if err != nil {
		data["error"] = err.Error()
	}
	a.post(slog.LevelError, msg, data)
}

func (a *FluentLoggerAdapter) Debug(msg string, fields port.Fields) {
	a.post(slog.LevelDebug, msg, a.mergeFields(fields))
}

func (a *FluentLoggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	return &FluentLoggerAdapter{
		client:   a.client,
		fields:   a.mergeFields(fields),
		minLevel: a.minLevel,
		now:      a.now,
	}
}

func (a *FluentLoggerAdapter) Close() error {
	return a.client.Close()
}
