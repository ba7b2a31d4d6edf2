// Package events описывает формат сообщений, которыми обмениваются ingress и processor.
package events

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"orders/internal/entities"
)

const (
	EventOrderCreated = "order_created"
	SchemaVersionV1   = "1"
	ContentTypeJSON   = "application/json"

	HeaderEvent         = "event"
	HeaderSchemaVersion = "schema-version"
	HeaderContentType   = "content-type"
)

var (
	ErrMalformedPayload         = errors.New("malformed order payload")
	ErrUnsupportedEvent         = errors.New("unsupported event")
	ErrUnsupportedSchemaVersion = errors.New("unsupported schema version")
)

// strict не пропускает незнакомые поля и ключи в другом регистре ("ID", "Quantity").
var strict = sonic.Config{
	DisallowUnknownFields: true,
	CaseSensitive:         true,
}.Froze()

// orderCreatedV1 - схема order_created версии 1. Указатели нужны, чтобы отличать
// отсутствующее поле от нулевого значения.
type orderCreatedV1 struct {
	ID         *string    `json:"id"`
	ProductID  *string    `json:"productId"`
	Quantity   *int       `json:"quantity"`
	Price      *float64   `json:"price"`
	CustomerID *string    `json:"customerId"`
	Status     *string    `json:"status"`
	CreatedAt  *time.Time `json:"createdAt"`
}

func EncodeOrderCreated(order entities.Order) ([]byte, error) {
	status := order.Status.String()
	createdAt := order.CreatedAt.UTC()

	payload := orderCreatedV1{
		ID:         &order.ID,
		ProductID:  &order.ProductID,
		Quantity:   &order.Quantity,
		Price:      &order.Price,
		CustomerID: &order.CustomerID,
		Status:     &status,
		CreatedAt:  &createdAt,
	}

	data, err := strict.Marshal(&payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", EventOrderCreated, err)
	}
	return data, nil
}

// DecodeOrderCreated разбирает payload order_created. Отсутствие id не считается
// ошибкой формата: это нарушение целостности, и его классифицирует processor.
func DecodeOrderCreated(payload []byte) (entities.Order, error) {
	if len(payload) == 0 {
		return entities.Order{}, fmt.Errorf("%w: empty payload", ErrMalformedPayload)
	}

	var msg orderCreatedV1
	if err := strict.Unmarshal(payload, &msg); err != nil {
		return entities.Order{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	var missing []string
	if msg.ProductID == nil {
		missing = append(missing, "productId")
	}
	if msg.Quantity == nil {
		missing = append(missing, "quantity")
	}
	if msg.Price == nil {
		missing = append(missing, "price")
	}
	if msg.CustomerID == nil {
		missing = append(missing, "customerId")
	}
	if msg.Status == nil {
		missing = append(missing, "status")
	}
	if msg.CreatedAt == nil {
		missing = append(missing, "createdAt")
	}
	if len(missing) > 0 {
		return entities.Order{}, fmt.Errorf("%w: missing fields: %s", ErrMalformedPayload, strings.Join(missing, ", "))
	}

	status := entities.OrderStatusType(*msg.Status)
	if !status.IsValid() {
		return entities.Order{}, fmt.Errorf("%w: unknown status %q", ErrMalformedPayload, *msg.Status)
	}

	order := entities.Order{
		ProductID:  *msg.ProductID,
		Quantity:   *msg.Quantity,
		Price:      *msg.Price,
		CustomerID: *msg.CustomerID,
		Status:     status,
		CreatedAt:  msg.CreatedAt.UTC(),
	}
	if msg.ID != nil {
		order.ID = *msg.ID
	}

	return order, nil
}

// CheckEnvelope проверяет заголовки сообщения до разбора payload.
func CheckEnvelope(event, schemaVersion string) error {
	if event != EventOrderCreated {
		return fmt.Errorf("%w: %q", ErrUnsupportedEvent, event)
	}
	if schemaVersion != SchemaVersionV1 {
		return fmt.Errorf("%w: %q", ErrUnsupportedSchemaVersion, schemaVersion)
	}
	return nil
}

// IsDeserializationError - сообщение нельзя превратить в заказ, повтор не поможет.
func IsDeserializationError(err error) bool {
	return errors.Is(err, ErrMalformedPayload) ||
		errors.Is(err, ErrUnsupportedEvent) ||
		errors.Is(err, ErrUnsupportedSchemaVersion)
}
