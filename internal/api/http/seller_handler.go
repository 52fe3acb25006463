package http

import (
	"net/http"

	"crateledger-backend/internal/service"

	"github.com/gorilla/mux"
)

type SellerHandler struct {
	sellerSvc service.SellerService
}

func NewSellerHandler(sellerSvc service.SellerService) *SellerHandler {
	return &SellerHandler{sellerSvc: sellerSvc}
}

type sellerRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (h *SellerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req sellerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Code == "" || req.Name == "" {
		writeBadRequest(w, "code and name are required")
		return
	}

	seller, err := h.sellerSvc.Create(r.Context(), req.Code, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, seller)
}

func (h *SellerHandler) List(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.sellerSvc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sellers)
}

func (h *SellerHandler) Rename(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req sellerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}

	if err := h.sellerSvc.Rename(r.Context(), code, req.Name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *SellerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if err := h.sellerSvc.Delete(r.Context(), code); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *SellerHandler) Export(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.sellerSvc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	serveCSV(w, "sellers", sellersTable(sellers))
}
