package http

import (
	"net/http"
	"strconv"
	"time"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/service"

	"github.com/gorilla/mux"
)

type ReportHandler struct {
	reportSvc service.ReportService
	ledgerSvc service.LedgerService
}

func NewReportHandler(reportSvc service.ReportService, ledgerSvc service.LedgerService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc, ledgerSvc: ledgerSvc}
}

func (h *ReportHandler) FleetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportSvc.FleetSummary(r.Context(), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *ReportHandler) Availability(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportSvc.AvailabilityBreakdown(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if wantsCSV(r) {
		serveCSV(w, "availability", availabilityTable(rows))
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// Movements reports a single day's ledger slice, selected by ?date=YYYY-MM-DD.
// Without a date it falls back to the recent listing.
func (h *ReportHandler) Movements(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	var (
		records []domain.MovementRecord
		err     error
	)
	if date == "" {
		records, err = h.reportSvc.RecentMovements(r.Context(), 100)
	} else {
		var from, to time.Time
		from, to, err = parseDay(date)
		if err != nil {
			writeBadRequest(w, "date must be YYYY-MM-DD")
			return
		}
		records, err = h.reportSvc.MovementsWindow(r.Context(), from, to)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if wantsCSV(r) {
		serveCSV(w, "movements", movementsTable(records))
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *ReportHandler) SellerActivity(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeBadRequest(w, "date is required")
		return
	}
	from, to, err := parseDay(date)
	if err != nil {
		writeBadRequest(w, "date must be YYYY-MM-DD")
		return
	}

	activity, err := h.reportSvc.SellerActivity(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	if wantsCSV(r) {
		serveCSV(w, "seller-activity", activityTable(activity))
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

func (h *ReportHandler) CrateHistory(w http.ResponseWriter, r *http.Request) {
	limit := 30
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeBadRequest(w, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	crate, entries, err := h.reportSvc.CrateHistory(r.Context(), mux.Vars(r)["barcode"], limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if wantsCSV(r) {
		serveCSV(w, "crate-history", historyTable(entries))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"crate":   crate,
		"history": entries,
	})
}

func (h *ReportHandler) Exposure(w http.ResponseWriter, r *http.Request) {
	exposures, err := h.reportSvc.ExposureRanking(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if wantsCSV(r) {
		serveCSV(w, "exposure", exposureTable(exposures))
		return
	}
	writeJSON(w, http.StatusOK, exposures)
}

func (h *ReportHandler) OpenLoans(w http.ResponseWriter, r *http.Request) {
	summary, detail, err := h.ledgerSvc.OpenLoansFor(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		writeError(w, err)
		return
	}
	if wantsCSV(r) {
		serveCSV(w, "open-loans", openLoansTable(detail))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"summary": summary,
		"detail":  detail,
	})
}

func wantsCSV(r *http.Request) bool {
	return r.URL.Query().Get("export") == "csv"
}
