package rabbitmq_producer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/beyondeth/shop/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ChannelSource - откуда производитель берет каналы (ConnectionManager).
type ChannelSource interface {
	GetChannel() (*amqp.Connection, *amqp.Channel, error)
}

// PublisherConfig конфигурация производителя
type PublisherConfig struct {
	rabbitmq_common.Config
	ExchangeName    string // имя обменника для публикации
	ExchangeType    string // direct, fanout, topic, headers
	DurableExchange bool
	ExchangeArgs    amqp.Table

	// если false, обменник должен уже существовать
	DeclareExchangeIfMissing bool

	Logger rabbitmq_common.Logger
}

func (c PublisherConfig) validate() error {
	if err := c.Config.Validate(); err != nil {
		return fmt.Errorf("invalid base config: %w", err)
	}
	if c.DeclareExchangeIfMissing && (c.ExchangeName == "") != (c.ExchangeType == "") {
		return errors.New("producer: exchange name and type must be set together when DeclareExchangeIfMissing is true")
	}
	return nil
}

// Publisher публикует сообщения в один обменник. Если соединение
// оборвалось, канал открывается заново при следующей публикации.
type Publisher struct {
	config PublisherConfig
	source ChannelSource

	mu         sync.Mutex
	connection *amqp.Connection
	channel    *amqp.Channel

	Logger rabbitmq_common.Logger
}

// NewPublisher создает производителя и объявляет обменник
func NewPublisher(cfg PublisherConfig, source ChannelSource) (*Publisher, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	p := &Publisher{config: cfg, source: source, Logger: logger}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.openLocked(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) openLocked() error {
	conn, ch, err := p.source.GetChannel()
	if err != nil {
		return fmt.Errorf("producer: failed to get channel from manager: %w", err)
	}

	if p.config.DeclareExchangeIfMissing {
		p.Logger.Debug("Declaring exchange", "name", p.config.ExchangeName, "type", p.config.ExchangeType)
		err = ch.ExchangeDeclare(
			p.config.ExchangeName,
			p.config.ExchangeType,
			p.config.DurableExchange,
			false, // auto-delete
			false, // internal
			false, // no-wait
			p.config.ExchangeArgs,
		)
		if err != nil {
			_ = ch.Close()
			return fmt.Errorf("producer: failed to declare exchange '%s': %w", p.config.ExchangeName, err)
		}
	}

	p.connection = conn
	p.channel = ch
	p.Logger.Debug("Producer channel opened", "exchange", p.config.ExchangeName)
	return nil
}

// Publish публикует сообщение
func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() || p.connection == nil || p.connection.IsClosed() {
		p.Logger.Warn("Producer channel is closed, reopening", "exchange", p.config.ExchangeName)
		if err := p.openLocked(); err != nil {
			return err
		}
	}

	err := p.channel.PublishWithContext(
		ctx,
		p.config.ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("producer: failed to publish message: %w", err)
	}
	return nil
}

// Close закрывает канал производителя. Соединение принадлежит менеджеру.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	if err != nil {
		p.Logger.Error(err, "Error closing channel")
		return err
	}
	p.Logger.Info("Producer closed.")
	return nil
}
