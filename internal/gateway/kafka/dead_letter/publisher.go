package dead_letter

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/IBM/sarama"
)

const (
	HeaderRejectReason      = "x-reject-reason"
	HeaderOriginalTopic     = "x-original-topic"
	HeaderOriginalPartition = "x-original-partition"
	HeaderOriginalOffset    = "x-original-offset"
)

// ErrDisabled - топик для отбракованных сообщений не настроен.
var ErrDisabled = errors.New("dead letter topic is not configured")

type Publisher struct {
	producer producer
	topic    string
}

// New с пустым topic дает выключенный Publisher, producer тогда может быть nil.
func New(producer producer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
	}
}

func (p *Publisher) Enabled() bool {
	return p.topic != "" && p.producer != nil
}

// Publish копирует сообщение как есть (ключ, значение, заголовки) и дописывает причину отказа.
func (p *Publisher) Publish(ctx context.Context, msg *sarama.ConsumerMessage, reason error) error {
	if !p.Enabled() {
		return ErrDisabled
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("dead letter %s/%d/%d: %w", msg.Topic, msg.Partition, msg.Offset, err)
	}

	reasonText := "unknown"
	if reason != nil {
		reasonText = reason.Error()
	}

	headers := make([]sarama.RecordHeader, 0, len(msg.Headers)+4)
	for _, h := range msg.Headers {
		if h == nil {
			continue
		}
		headers = append(headers, *h)
	}
	headers = append(headers,
		sarama.RecordHeader{Key: []byte(HeaderRejectReason), Value: []byte(reasonText)},
		sarama.RecordHeader{Key: []byte(HeaderOriginalTopic), Value: []byte(msg.Topic)},
		sarama.RecordHeader{Key: []byte(HeaderOriginalPartition), Value: []byte(strconv.FormatInt(int64(msg.Partition), 10))},
		sarama.RecordHeader{Key: []byte(HeaderOriginalOffset), Value: []byte(strconv.FormatInt(msg.Offset, 10))},
	)

	out := &sarama.ProducerMessage{
		Topic:   p.topic,
		Value:   sarama.ByteEncoder(msg.Value),
		Headers: headers,
	}
	if msg.Key != nil {
		out.Key = sarama.ByteEncoder(msg.Key)
	}

	if _, _, err := p.producer.SendMessage(out); err != nil {
		DeadLetterTotal.WithLabelValues(msg.Topic, "error").Inc()
		return fmt.Errorf("dead letter %s/%d/%d to %s: %w", msg.Topic, msg.Partition, msg.Offset, p.topic, err)
	}

	DeadLetterTotal.WithLabelValues(msg.Topic, "ok").Inc()
	return nil
}

func (p *Publisher) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
