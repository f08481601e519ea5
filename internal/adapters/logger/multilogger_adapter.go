package logger_adapter

import (
	"errors"

	"github.com/beyondeth/shop/internal/core/port"
)

// MultiLoggerAdapter пишет каждую запись во все вложенные логгеры.
type MultiLoggerAdapter struct {
	loggers []port.LoggerPort
}

func NewMultiloggerAdapter(loggers ...port.LoggerPort) (port.LoggerPort, error) {
	active := make([]port.LoggerPort, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			active = append(active, l)
		}
	}
	if len(active) == 0 {
		return nil, errors.New("multilogger: at least one logger is required")
	}
	return &MultiLoggerAdapter{loggers: active}, nil
}

func (m *MultiLoggerAdapter) Info(msg string, fields port.Fields) {
	for _, l := range m.loggers {
		l.Info(msg, fields)
	}
}

func (m *MultiLoggerAdapter) Warn(msg string, fields port.Fields) {
	for _, l := range m.loggers {
		l.Warn(msg, fields)
	}
}

func (m *MultiLoggerAdapter) Error(msg string, err error, fields port.Fields) {
	for _, l := range m.loggers {
		l.Error(msg, err, fields)
	}
}

func (m *MultiLoggerAdapter) Debug(msg string, fields port.Fields) {
	for _, l := range m.loggers {
		l.Debug(msg, fields)
	}
}

func (m *MultiLoggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	enriched := make([]port.LoggerPort, 0, len(m.loggers))
	for _, l := range m.loggers {
		enriched = append(enriched, l.WithFields(fields))
	}
	return &MultiLoggerAdapter{loggers: enriched}
}
