package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/metrics"
	"crateledger-backend/internal/service"
	"crateledger-backend/internal/session"
)

type MovementHandler struct {
	ledgerSvc service.LedgerService
	reportSvc service.ReportService
	sessions  *session.Store
}

func NewMovementHandler(ledgerSvc service.LedgerService, reportSvc service.ReportService, sessions *session.Store) *MovementHandler {
	return &MovementHandler{ledgerSvc: ledgerSvc, reportSvc: reportSvc, sessions: sessions}
}

type recordMovementRequest struct {
	Seller  string `json:"seller"`
	Barcode string `json:"barcode"`
	Kind    string `json:"kind"`
}

type recordMovementResponse struct {
	Movement       *domain.Movement `json:"movement"`
	SessionCounter int              `json:"session_counter,omitempty"`
}

func (h *MovementHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordMovementRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Seller == "" || req.Barcode == "" {
		writeBadRequest(w, "seller and barcode are required")
		return
	}
	kind := domain.MovementKind(req.Kind)
	if !kind.Valid() {
		writeBadRequest(w, "kind must be Sale or Entra")
		return
	}

	movement, err := h.ledgerSvc.RecordMovement(r.Context(), req.Seller, req.Barcode, kind, time.Now())
	if err != nil {
		metrics.MovementsRejected.WithLabelValues(rejectionReason(err)).Inc()
		writeError(w, err)
		return
	}
	metrics.MovementsRecorded.WithLabelValues(string(kind)).Inc()

	resp := recordMovementResponse{Movement: movement}
	if sessionID := r.Header.Get("X-Session-ID"); sessionID != "" {
		if state, err := h.sessions.Get(r.Context(), sessionID); err == nil {
			state.Touch(movement.SellerCode, string(kind))
			if err := h.sessions.Save(r.Context(), sessionID, state); err == nil {
				resp.SessionCounter = state.Counter
			}
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *MovementHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeBadRequest(w, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := h.reportSvc.RecentMovements(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrSellerNotFound):
		return "seller_not_found"
	case errors.Is(err, domain.ErrCrateNotFound):
		return "crate_not_found"
	case errors.Is(err, domain.ErrNothingToReturn):
		return "nothing_to_return"
	case errors.Is(err, domain.ErrWrongHolder):
		return "wrong_holder"
	case errors.Is(err, domain.ErrAlreadyLoaned):
		return "already_loaned"
	case errors.Is(err, domain.ErrNotLoaned):
		return "not_loaned"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "other"
	}
}
