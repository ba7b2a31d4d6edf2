package order_created

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"orders/internal/entities"
	"orders/internal/events"
	"orders/internal/pkg/tracing"
)

var ErrPublisherClosed = errors.New("publisher is closed")

// Publisher отправляет order_created в топик и ждет подтверждения брокера.
type Publisher struct {
	producer producer
	topic    string

	// RLock держат идущие отправки, Lock берет Close
	mu     sync.RWMutex
	closed bool
}

func New(producer producer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
	}
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, order entities.Order) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPublisherClosed
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("publish order %s: %w", order.ID, err)
	}

	payload, err := events.EncodeOrderCreated(order)
	if err != nil {
		return fmt.Errorf("publish order %s: %w", order.ID, err)
	}

	headers := []sarama.RecordHeader{
		{Key: []byte(events.HeaderEvent), Value: []byte(events.EventOrderCreated)},
		{Key: []byte(events.HeaderSchemaVersion), Value: []byte(events.SchemaVersionV1)},
		{Key: []byte(events.HeaderContentType), Value: []byte(events.ContentTypeJSON)},
	}
	headers = append(headers, tracing.InjectToKafka(ctx)...)

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(order.ID),
		Value:     sarama.ByteEncoder(payload),
		Headers:   headers,
		Timestamp: order.CreatedAt,
	}

	start := time.Now()
	_, _, err = p.producer.SendMessage(msg)
	PublishDuration.WithLabelValues(events.EventOrderCreated).Observe(time.Since(start).Seconds())

	if err != nil {
		PublishTotal.WithLabelValues(events.EventOrderCreated, "error").Inc()
		return fmt.Errorf("publish order %s to %s: %w", order.ID, p.topic, err)
	}

	PublishTotal.WithLabelValues(events.EventOrderCreated, "ok").Inc()
	return nil
}

// Ready ложно после Close.
func (p *Publisher) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.closed
}

// Close дожидается отправок в процессе и закрывает продьюсер. Повторный вызов - no-op.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("close producer: %w", err)
	}
	return nil
}
