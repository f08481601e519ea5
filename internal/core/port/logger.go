package port

// Fields - структурированные данные для записи в лог.
type Fields map[string]interface{}

// LoggerPort - контракт системы логирования.
// Ядро витрины ничего не знает о конкретном логгере (slog, fluent и т.д.).
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	// Error записывает ошибку вместе с объектом error.
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)

	// WithFields возвращает логгер с уже добавленными полями
	// (trace_id, session_id, component и т.п.).
	WithFields(fields Fields) LoggerPort
}
