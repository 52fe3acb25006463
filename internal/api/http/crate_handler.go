package http

import (
	"net/http"
	"time"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/service"

	"github.com/gorilla/mux"
)

type CrateHandler struct {
	crateSvc service.CrateService
}

func NewCrateHandler(crateSvc service.CrateService) *CrateHandler {
	return &CrateHandler{crateSvc: crateSvc}
}

type registerCrateRequest struct {
	Barcode   string `json:"barcode"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Condition string `json:"condition"`
}

func (h *CrateHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerCrateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Barcode == "" || req.Size == "" || req.Color == "" || req.Condition == "" {
		writeBadRequest(w, "barcode, size, color and condition are required")
		return
	}

	crate, err := h.crateSvc.Register(r.Context(), req.Barcode, req.Size, req.Color,
		domain.CrateCondition(req.Condition), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, crate)
}

func (h *CrateHandler) Get(w http.ResponseWriter, r *http.Request) {
	crate, err := h.crateSvc.Get(r.Context(), mux.Vars(r)["barcode"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, crate)
}

func (h *CrateHandler) List(w http.ResponseWriter, r *http.Request) {
	crates, err := h.crateSvc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, crates)
}

// Export streams the crate registry as csv (default) or xlsx.
func (h *CrateHandler) Export(w http.ResponseWriter, r *http.Request) {
	crates, err := h.crateSvc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	table := cratesTable(crates)
	if r.URL.Query().Get("format") == "xlsx" {
		serveXLSX(w, "crates", "Crates", table)
		return
	}
	serveCSV(w, "crates", table)
}
