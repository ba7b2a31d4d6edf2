package order_post

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"reflect"

	"orders/internal/entities"
	"orders/internal/generated/dto"
	"orders/internal/service/ingress"
	"orders/pkg/logger"
)

const (
	maxBodyBytes = 1 << 20

	// целые до 2^53 представимы в float64 без потерь
	maxExactQuantity = 1 << 53
)

// orderCreateRequest читает quantity как число JSON, чтобы 2.0 считалось целым,
// а 2.5 давало ошибку поля, а не ошибку разбора тела.
type orderCreateRequest struct {
	dto.OrderCreate
	Quantity *float64 `json:"quantity,omitempty"`
}

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "order_post"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	var req orderCreateRequest
	err := decoder.Decode(&req)
	if err == nil && decoder.More() {
		err = errors.New("unexpected data after JSON body")
	}
	if err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			h.writeValidationError(w, []dto.FieldError{{
				Field:  typeErr.Field,
				Reason: "must be " + jsonKind(typeErr.Type),
			}})
			return
		}
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		h.writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	quantity, ok := toQuantity(req.Quantity)
	if !ok {
		h.writeValidationError(w, []dto.FieldError{{Field: "quantity", Reason: "must be an integer"}})
		return
	}

	order, err := h.service.SubmitOrder(r.Context(), entities.OrderCreate{
		ProductID:  req.ProductID,
		Quantity:   quantity,
		Price:      req.Price,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		var validationErr *ingress.ValidationError
		switch {
		case errors.As(err, &validationErr):
			fields := make([]dto.FieldError, 0, len(validationErr.Fields))
			for _, f := range validationErr.Fields {
				fields = append(fields, dto.FieldError{Field: f.Field, Reason: f.Reason})
			}
			h.writeValidationError(w, fields)
		case errors.Is(err, ingress.ErrPublish):
			h.log.Error("order was not published", logger.NewField("error", err))
			h.writeJSON(w, http.StatusServiceUnavailable, dto.ErrorResponse{
				Message: "order could not be queued, try again later",
			})
		default:
			h.log.Error("submit order", logger.NewField("error", err))
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	h.log.Info("order submitted",
		logger.NewField("order", order.ID),
		logger.NewField("customer", order.CustomerID),
	)
	h.writeJSON(w, http.StatusCreated, dto.OrderCreateResponse{ID: order.ID})
}

func (h *Handler) writeValidationError(w http.ResponseWriter, fields []dto.FieldError) {
	h.writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
		Message: ingress.ErrValidation.Error(),
		Errors:  &fields,
	})
}

// toQuantity пропускает nil дальше: отсутствие поля проверяет сервис.
func toQuantity(q *float64) (*int, bool) {
	if q == nil {
		return nil, true
	}
	if math.Trunc(*q) != *q || math.Abs(*q) > maxExactQuantity {
		return nil, false
	}
	quantity := int(*q)
	return &quantity, true
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "a number"
	default:
		return "a valid value"
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
