package health_get

import (
	"encoding/json"
	"net/http"

	"github.com/AlekSi/pointer"
	"orders/internal/generated/dto"
	"orders/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	checker Checker
}

func New(log handlerLogger, checker Checker) *Handler {
	handlerLog := log.With(logger.NewField("handler", "health_get"))

	return &Handler{
		log:     handlerLog,
		checker: checker,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ok, results := h.checker.Check(r.Context())

	res := dto.HealthResponse{
		Status: dto.HealthResponseStatusOk,
		Checks: make(map[string]dto.HealthCheck, len(results)),
	}
	status := http.StatusOK
	if !ok {
		res.Status = dto.HealthResponseStatusError
		status = http.StatusServiceUnavailable
	}

	for _, result := range results {
		check := dto.HealthCheck{
			Status:    dto.Up,
			Value:     pointer.ToFloat64(result.Value),
			Threshold: pointer.ToFloat64(result.Threshold),
		}
		if !result.Up {
			check.Status = dto.Down
		}
		if result.Err != nil {
			check.Error = pointer.ToString(result.Err.Error())
			check.Value = nil
		}
		res.Checks[result.Name] = check
	}

	if !ok {
		h.log.Warn("health check failed", logger.NewField("checks", res.Checks))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(res)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
