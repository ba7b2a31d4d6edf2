package orders_get

import (
	"encoding/json"
	"net/http"

	"orders/internal/handlers/rest/converters"
	"orders/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "orders_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderEntities, err := h.service.ListProcessedOrders(r.Context())
	if err != nil {
		h.log.Error("list processed orders", logger.NewField("error", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	orderDTOs := converters.ToProcessedOrderDTOs(orderEntities)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(orderDTOs)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
