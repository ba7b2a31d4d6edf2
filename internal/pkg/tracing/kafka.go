package tracing

import (
	"context"
	"net/http"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

var propagator = propagation.NewCompositeTextMapPropagator(
	propagation.TraceContext{},
	propagation.Baggage{},
)

// InjectToKafka возвращает заголовки traceparent/tracestate/baggage для исходящего сообщения.
// Если в ctx нет трассировки - пустой срез.
func InjectToKafka(ctx context.Context) []sarama.RecordHeader {
	carrier := propagation.MapCarrier{}
	propagator.Inject(ctx, carrier)

	headers := make([]sarama.RecordHeader, 0, len(carrier))
	for _, key := range carrier.Keys() {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(carrier.Get(key)),
		})
	}
	return headers
}

// ExtractFromKafka кладет в ctx удаленный span context из заголовков сообщения.
func ExtractFromKafka(ctx context.Context, headers []*sarama.RecordHeader) context.Context {
	carrier := propagation.MapCarrier{}
	for _, h := range headers {
		if h == nil {
			continue
		}
		carrier[string(h.Key)] = string(h.Value)
	}
	return propagator.Extract(ctx, carrier)
}

// ExtractFromHTTP - то же для входящего HTTP запроса.
func ExtractFromHTTP(ctx context.Context, header http.Header) context.Context {
	return propagator.Extract(ctx, propagation.HeaderCarrier(header))
}

// ConsumerLinks связывает обработку сообщения с span'ом продьюсера.
func ConsumerLinks(ctx context.Context) []trace.Link {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return nil
	}

	return []trace.Link{{
		SpanContext: spanCtx,
		Attributes: []attribute.KeyValue{
			attribute.String("link.type", "async"),
			attribute.String("link.protocol", "kafka"),
			attribute.String("link.role", "consumer"),
		},
	}}
}

// TraceID для логов, пустая строка если трассировки нет.
func TraceID(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.HasTraceID() {
		return ""
	}
	return spanCtx.TraceID().String()
}
