package order_created

import (
	"context"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"orders/internal/entities"
	"orders/internal/events"
	"orders/internal/pkg/tracing"
	"orders/internal/service/processor"
	"orders/pkg/logger"
)

var tracer = otel.Tracer("orders/processor/order_created")

type Handler struct {
	orderService             Service
	deadLetter               DeadLetter
	log                      handlerLogger
	messageProcessingTimeout time.Duration
	commitOnAck              bool
}

type Option func(*Handler)

// WithCommitOnAck коммитит offset сразу после MarkMessage, для режима без автокоммита sarama.
func WithCommitOnAck() Option {
	return func(h *Handler) {
		h.commitOnAck = true
	}
}

func New(log handlerLogger, orderService Service, deadLetter DeadLetter, timeout time.Duration, opts ...Option) *Handler {
	handlerLog := log.With(logger.NewField("handler", events.EventOrderCreated))

	h := &Handler{
		orderService:             orderService,
		deadLetter:               deadLetter,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim обрабатывает партицию строго по порядку. Выход без MarkMessage
// завершает сессию, и группа после переподключения получит сообщение заново.
func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("order_created: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			h.log.Info("order_created: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing: Received -> Validated -> Stored -> Acknowledged, либо Rejected.
// Возвращает true, если сообщение осталось неподтвержденным и ConsumeClaim нужно прервать.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx := tracing.ExtractFromKafka(sess.Context(), message.Headers)
	msgLog := h.log.With(
		logger.NewField("partition", message.Partition),
		logger.NewField("offset", message.Offset),
		logger.NewField("trace_id", tracing.TraceID(ctx)),
	)

	ctx, span := tracer.Start(ctx, "order_created.process",
		trace.WithNewRoot(),
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithLinks(tracing.ConsumerLinks(ctx)...),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, h.messageProcessingTimeout)
	defer cancel()

	order, err := decode(message)
	if err != nil {
		span.RecordError(err)
		return h.reject(ctx, sess, message, msgLog, err)
	}

	msgLog = msgLog.With(logger.NewField("order", order.ID))
	span.SetAttributes(attribute.String("order.id", order.ID))
	msgLog.Debug("order_created received")

	processed, err := h.orderService.ProcessOrder(ctx, order)
	if err != nil {
		span.RecordError(err)

		switch {
		case errors.Is(err, processor.ErrAlreadyProcessed):
			msgLog.Info("order_created: duplicate delivery acknowledged")
			OrderEventsConsumed.WithLabelValues(outcomeDuplicate).Inc()
			h.ack(sess, message)
			return false

		case errors.Is(err, processor.ErrIntegrity):
			return h.reject(ctx, sess, message, msgLog, err)

		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.Warn("order_created: context cancelled, message will be redelivered",
				logger.NewField("error", err),
			)

		default:
			msgLog.Error("order_created: failed to store order, message will be redelivered",
				logger.NewField("error", err),
			)
		}

		span.SetStatus(codes.Error, "left unacknowledged")
		OrderEventsConsumed.WithLabelValues(outcomeRedelivery).Inc()
		return true
	}

	h.ack(sess, message)
	OrderEventsConsumed.WithLabelValues(outcomeProcessed).Inc()
	msgLog.Info("order_created: processed",
		logger.NewField("status", processed.Status.String()),
		logger.NewField("processed_at", processed.ProcessedAt),
	)
	return false
}

// reject отправляет сообщение в dead letter и подтверждает его. Если dead letter
// не принял сообщение, оно остается неподтвержденным.
func (h *Handler) reject(
	ctx context.Context,
	sess sarama.ConsumerGroupSession,
	message *sarama.ConsumerMessage,
	msgLog logger.Logger,
	reason error,
) bool {
	if !h.deadLetter.Enabled() {
		msgLog.Warn("order_created: message rejected and dropped", logger.NewField("reason", reason))
		OrderEventsConsumed.WithLabelValues(outcomeDropped).Inc()
		h.ack(sess, message)
		return false
	}

	if err := h.deadLetter.Publish(ctx, message, reason); err != nil {
		msgLog.Error("order_created: dead letter publish failed, message will be redelivered",
			logger.NewField("reason", reason),
			logger.NewField("error", err),
		)
		OrderEventsConsumed.WithLabelValues(outcomeRedelivery).Inc()
		return true
	}

	msgLog.Warn("order_created: message rejected to dead letter", logger.NewField("reason", reason))
	OrderEventsConsumed.WithLabelValues(outcomeDeadLettered).Inc()
	h.ack(sess, message)
	return false
}

func (h *Handler) ack(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) {
	sess.MarkMessage(message, "")
	if h.commitOnAck {
		sess.Commit()
	}
}

func decode(message *sarama.ConsumerMessage) (entities.Order, error) {
	var event, version string
	for _, h := range message.Headers {
		if h == nil {
			continue
		}
		switch string(h.Key) {
		case events.HeaderEvent:
			event = string(h.Value)
		case events.HeaderSchemaVersion:
			version = string(h.Value)
		}
	}

	if err := events.CheckEnvelope(event, version); err != nil {
		return entities.Order{}, err
	}
	return events.DecodeOrderCreated(message.Value)
}
