package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeKind = "topic"

// Publisher публикует события бронирований в durable topic exchange RabbitMQ.
// Routing key совпадает с типом события.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       amqpChannel
	exchange string
	log      Logger
}

// NewPublisher подключается к брокеру и объявляет exchange
func NewPublisher(url, exchange string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		exchangeKind,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	log.Info("Events publisher connected, exchange=%s", exchange)

	return &Publisher{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		log:      log,
	}, nil
}

func newPublisherWithChannel(ch amqpChannel, exchange string, log Logger) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, log: log}
}

// Publish отправляет событие как persistent JSON сообщение
func (p *Publisher) Publish(ctx context.Context, event BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, event.Type, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         string(event.Type),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	// amqp.Channel нельзя использовать конкурентно
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, msg); err != nil {
		return fmt.Errorf("%w: %s booking_id=%d: %v", ErrPublish, event.Type, event.BookingID, err)
	}

	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		p.log.Warn("Events publisher: failed to close channel: %v", err)
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NoopPublisher используется, когда RabbitMQ выключен
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, BookingEvent) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
