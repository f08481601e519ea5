package fluentlogger

import (
	"errors"
	"fmt"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// Config хранит конфигурацию для подключения к Fluent Bit.
type Config struct {
	Host      string // "127.0.0.1" или "fluent-bit" в Docker
	Port      int    // обычно 24224
	TagPrefix string // общий префикс тегов логов сервиса
	// Async: запись не блокирует запрос, если Fluent Bit недоступен
	Async   bool
	Timeout time.Duration
}

// NewClient создает клиент Fluent Bit. Пинга нет: ошибки соединения
// проявятся при первой отправке лога.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, errors.New("fluentd tag prefix is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	logger, err := fluent.New(fluent.Config{
		FluentHost:   cfg.Host,
		FluentPort:   cfg.Port,
		TagPrefix:    cfg.TagPrefix,
		Async:        cfg.Async,
		Timeout:      timeout,
		WriteTimeout: timeout,
		MaxRetry:     3,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluentd logger: %w", err)
	}
	return logger, nil
}
