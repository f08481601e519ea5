package domain

import "time"

type EventType string

const (
	EventCheckoutStarted EventType = "checkout.started"
	EventMemberUpdated   EventType = "member.updated"
	EventReviewCreated   EventType = "review.created"
	EventCartCleared     EventType = "cart.cleared"
)

// StorefrontEvent - факт, произошедший на витрине, для внешних подписчиков.
type StorefrontEvent struct {
	Type       EventType
	SessionID  string
	OccurredAt time.Time
	Attributes map[string]string
}

// MutationRecord - запись журнала о завершенной мутации.
type MutationRecord struct {
	Mutation   string
	SessionID  string
	Succeeded  bool
	ErrorText  string
	StartedAt  time.Time
	DurationMs int64
}
