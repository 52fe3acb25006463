package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/logger"
	"crateledger-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses. Everything in
// the taxonomy is recoverable at the request boundary; the client re-renders.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSellerNotFound),
		errors.Is(err, domain.ErrCrateNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNothingToReturn),
		errors.Is(err, domain.ErrAlreadyLoaned),
		errors.Is(err, domain.ErrNotLoaned),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrSellerCodeTaken),
		errors.Is(err, service.ErrBarcodeTaken):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrWrongHolder):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeBadRequest(w, "invalid request body")
		return false
	}
	return true
}
