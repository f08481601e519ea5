package usecase

import (
	"context"

	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/mutation"
	"github.com/beyondeth/shop/internal/core/port"
)

// publishEvent отправляет событие витрины. Ошибка брокера только логируется:
// событие вторично по отношению к операции пользователя.
func publishEvent(ctx context.Context, events port.EventPublisherPort, logger port.LoggerPort, event domain.StorefrontEvent) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, event); err != nil {
		logger.Error("Failed to publish storefront event", err, port.Fields{"event_type": string(event.Type)})
	}
}

// JournalObserver пишет итог каждой мутации в журнал.
type JournalObserver struct {
	journal port.MutationJournalPort
	logger  port.LoggerPort
}

var _ mutation.Observer = (*JournalObserver)(nil)

func NewJournalObserver(journal port.MutationJournalPort, logger port.LoggerPort) *JournalObserver {
	return &JournalObserver{journal: journal, logger: logger}
}

func (o *JournalObserver) MutationSettled(ctx context.Context, record domain.MutationRecord) {
	if err := o.journal.Record(ctx, record); err != nil {
		o.logger.Error("Failed to record mutation", err, port.Fields{
			"mutation":   record.Mutation,
			"session_id": record.SessionID,
		})
	}
}
