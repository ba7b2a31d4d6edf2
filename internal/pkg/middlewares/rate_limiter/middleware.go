package rate_limiter

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"orders/internal/generated/dto"
	"orders/pkg/logger"
)

const rateLimitedMessage = "rate limit exceeded, try again later"

// Middleware отвечает 429, когда limiter не выдал токен.
// qps попадает в X-RateLimit-Limit и может быть дробным.
func Middleware(log handlerLogger, qps float64, limiter Limiter) func(http.Handler) http.Handler {
	limitHeader := strconv.FormatFloat(qps, 'f', -1, 64)
	retryAfter := strconv.Itoa(retryAfterSeconds(qps))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if template, err := current.GetPathTemplate(); err == nil {
					route = template
				}
			}

			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("path", r.URL.Path),
				logger.NewField("route", route),
				logger.NewField("remote_addr", r.RemoteAddr),
			).Warn("rate limit exceeded")

			RateLimitExceededTotal.WithLabelValues(r.Method, route).Inc()

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", limitHeader)
			w.Header().Set("Retry-After", retryAfter)
			w.WriteHeader(http.StatusTooManyRequests)

			err := json.NewEncoder(w).Encode(dto.ErrorResponse{Message: rateLimitedMessage})
			if err != nil {
				log.With(
					logger.NewField("error", err),
					logger.NewField("path", r.URL.Path),
				).Error("failed to write rate limit response")
			}
		})
	}
}

// retryAfterSeconds - время до появления следующего токена, не меньше секунды.
func retryAfterSeconds(qps float64) int {
	if qps <= 0 || math.IsInf(qps, 0) || math.IsNaN(qps) {
		return 1
	}
	return max(1, int(math.Ceil(1/qps)))
}
