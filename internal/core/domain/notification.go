package domain

type NotificationVariant string

const (
	NotificationDefault     NotificationVariant = "default"
	NotificationDestructive NotificationVariant = "destructive"
)

// Notification - всплывающее уведомление (toast) для пользователя.
// Текст всегда статический, без деталей ошибки.
type Notification struct {
	Variant     NotificationVariant `json:"variant"`
	Description string              `json:"description"`
}

type ClientEventType string

const (
	ClientEventToast   ClientEventType = "toast"
	ClientEventRefresh ClientEventType = "refresh"
)

// ClientEvent - событие для открытой вкладки браузера (через SSE).
type ClientEvent struct {
	Type         ClientEventType `json:"type"`
	Notification *Notification   `json:"notification,omitempty"`
}
