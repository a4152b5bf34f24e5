package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/raushankrgupta/nutriwise/models"
	"github.com/rs/zerolog/log"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RespondJSON sends a JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Error encoding JSON response")
	}
}

// RespondError sends a JSON error response and records the message in the request log.
func RespondError(w http.ResponseWriter, logger *strings.Builder, message string, status int) {
	if logger != nil {
		AddToLogMessage(logger, message)
	} else {
		log.Warn().Int("status", status).Msg(message)
	}
	RespondJSON(w, status, map[string]string{"error": message})
}

// RespondAppError maps err to a status code. Internal errors are logged with
// their cause and answered with a generic message.
func RespondAppError(w http.ResponseWriter, logger *strings.Builder, err error) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		appErr = models.Internal("Internal server error", err)
	}
	switch appErr.Kind {
	case models.KindNotFound:
		RespondError(w, logger, appErr.Message, http.StatusNotFound)
	case models.KindConflict:
		RespondError(w, logger, appErr.Message, http.StatusConflict)
	case models.KindUnauthorized:
		RespondError(w, logger, appErr.Message, http.StatusUnauthorized)
	case models.KindForbidden:
		RespondError(w, logger, appErr.Message, http.StatusForbidden)
	case models.KindValidation:
		RespondError(w, logger, appErr.Message, http.StatusBadRequest)
	default:
		if logger != nil {
			AddToLogMessage(logger, fmt.Sprintf("Internal error: %v", appErr))
		}
		RespondError(w, logger, "Internal server error", http.StatusInternalServerError)
	}
}

// DecodeJSON decodes the request body into dst and validates it.
// An empty body decodes to the zero value so defaults can apply.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return models.Validation("Invalid request body")
	}
	if err := ValidateStruct(dst); err != nil {
		return models.Validation(err.Error())
	}
	return nil
}

// maxQueryInt bounds day and limit parameters so date arithmetic stays in range.
const maxQueryInt = 3650

// QueryInt reads a positive integer query parameter, falling back to def.
func QueryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, models.Validation(fmt.Sprintf("%s must be a positive integer", key))
	}
	if n > maxQueryInt {
		return 0, models.Validation(fmt.Sprintf("%s must be at most %d", key, maxQueryInt))
	}
	return n, nil
}

// RequestIDFromContext returns the id assigned by RequestIDMiddleware.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestIDMiddleware tags every request with an X-Request-ID, reusing the client's when present.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LatencyMiddleware logs the duration of each request and records it in Prometheus.
func LatencyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		duration := time.Since(start)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(duration.Seconds())

		log.Info().
			Str("request_id", RequestIDFromContext(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("latency", duration).
			Msg("request")
	})
}
