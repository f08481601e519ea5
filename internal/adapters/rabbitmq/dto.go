package rabbitmq

import "time"

// StorefrontEventDTO - тело сообщения о событии витрины
type StorefrontEventDTO struct {
	EventID    string            `json:"event_id"`
	Type       string            `json:"type"`
	SessionID  string            `json:"session_id,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
	Attributes map[string]string `json:"attributes,omitempty"`
}
