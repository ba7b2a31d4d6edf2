package order_status_put

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"orders/internal/entities"
	"orders/internal/generated/dto"
	"orders/internal/handlers/rest/converters"
	"orders/internal/service/processor"
	"orders/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "order_status_put"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var statusDTO dto.OrderStatusUpdate
	if err := decoder.Decode(&statusDTO); err != nil {
		h.writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body: " + err.Error()})
		return
	}

	orderEntity, err := h.service.UpdateOrderStatus(r.Context(), id, entities.OrderStatusType(statusDTO.Status))
	if err != nil {
		switch {
		case errors.Is(err, processor.ErrInvalidStatus):
			h.writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		case errors.Is(err, processor.ErrOrderNotFound):
			h.writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Message: "order not found"})
		case errors.Is(err, processor.ErrInvalidTransition):
			h.writeJSON(w, http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
		default:
			h.log.Error("update order status", logger.NewField("order", id), logger.NewField("error", err))
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	h.log.Info("order status updated",
		logger.NewField("order", orderEntity.ID),
		logger.NewField("status", orderEntity.Status.String()),
	)
	h.writeJSON(w, http.StatusOK, converters.ToProcessedOrderDTO(*orderEntity))
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
