package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beyondeth/shop/internal/constants"
	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/port"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MessagePublisher - то, что умеет rabbitmq_producer.Publisher
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// EventPublisherAdapter публикует события витрины в обменник событий.
type EventPublisherAdapter struct {
	producer MessagePublisher
	timeout  time.Duration
}

var _ port.EventPublisherPort = (*EventPublisherAdapter)(nil)

func NewEventPublisherAdapter(producer MessagePublisher) (*EventPublisherAdapter, error) {
	if producer == nil {
		return nil, errors.New("rabbitmq adapter: producer cannot be nil")
	}
	return &EventPublisherAdapter{producer: producer, timeout: 5 * time.Second}, nil
}

func routingKeyFor(t domain.EventType) (string, error) {
	switch t {
	case domain.EventCheckoutStarted:
		return constants.RoutingKeyCheckoutStarted, nil
	case domain.EventMemberUpdated:
		return constants.RoutingKeyMemberUpdated, nil
	case domain.EventReviewCreated:
		return constants.RoutingKeyReviewCreated, nil
	case domain.EventCartCleared:
		return constants.RoutingKeyCartCleared, nil
	default:
		return "", fmt.Errorf("rabbitmq adapter: unknown event type %q", t)
	}
}

func (a *EventPublisherAdapter) Publish(ctx context.Context, event domain.StorefrontEvent) error {
	routingKey, err := routingKeyFor(event.Type)
	if err != nil {
		return err
	}

	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "EventPublisherAdapter",
		"routing_key": routingKey,
	})

	dto := StorefrontEventDTO{
		EventID:    uuid.NewString(),
		Type:       string(event.Type),
		SessionID:  event.SessionID,
		OccurredAt: event.OccurredAt.UTC(),
		Attributes: event.Attributes,
	}
	body, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    dto.EventID,
		Timestamp:    dto.OccurredAt,
		Type:         dto.Type,
		Headers:      make(amqp.Table),
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish storefront event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish %s: %w", event.Type, err)
	}

	adapterLogger.Debug("Storefront event published", port.Fields{"event_id": dto.EventID})
	return nil
}
