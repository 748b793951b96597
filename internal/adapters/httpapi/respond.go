package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/example/barter/internal/core/messaging"
	"github.com/example/barter/internal/logger"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Debug("cannot encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}

// writeServiceError maps domain errors onto status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		validation  *messaging.ValidationError
		notFound    *messaging.NotFoundError
		permission  *messaging.PermissionError
		unavailable *messaging.StoreUnavailableError
	)

	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Error())
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &permission):
		writeError(w, http.StatusForbidden, permission.Error())
	case errors.As(err, &unavailable):
		logger.Log.Warn("message store unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "message store unavailable, try again later")
	default:
		logger.Log.Error("unexpected service error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
