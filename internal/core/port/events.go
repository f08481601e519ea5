package port

import (
	"context"

	"github.com/beyondeth/shop/internal/core/domain"
)

// EventPublisherPort публикует события витрины во внешний брокер.
type EventPublisherPort interface {
	Publish(ctx context.Context, event domain.StorefrontEvent) error
}

// MutationJournalPort сохраняет итоги мутаций.
type MutationJournalPort interface {
	Record(ctx context.Context, record domain.MutationRecord) error
}
