package http

import (
	"net/http"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/service"
)

// AdminHandler groups the destructive and user-management operations that sit
// behind the admin role.
type AdminHandler struct {
	authSvc   service.AuthService
	ledgerSvc service.LedgerService
	crateSvc  service.CrateService
}

func NewAdminHandler(authSvc service.AuthService, ledgerSvc service.LedgerService, crateSvc service.CrateService) *AdminHandler {
	return &AdminHandler{authSvc: authSvc, ledgerSvc: ledgerSvc, crateSvc: crateSvc}
}

type registerUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *AdminHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeBadRequest(w, "username and password are required")
		return
	}
	role := domain.UserRole(req.Role)
	if role == "" {
		role = domain.UserRoleOperator
	}
	if role != domain.UserRoleAdmin && role != domain.UserRoleOperator {
		writeBadRequest(w, "role must be admin or operator")
		return
	}

	user, err := h.authSvc.Register(r.Context(), req.Username, req.Password, role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// PurgeMovements wipes the ledger and resets every crate to available.
// Irreversible; used at period end.
func (h *AdminHandler) PurgeMovements(w http.ResponseWriter, r *http.Request) {
	if err := h.ledgerSvc.PurgeMovements(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *AdminHandler) PurgeCrates(w http.ResponseWriter, r *http.Request) {
	if err := h.crateSvc.PurgeCrates(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *AdminHandler) RehashPasswords(w http.ResponseWriter, r *http.Request) {
	updated, err := h.authSvc.RehashPasswords(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

func (h *AdminHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	repaired, err := h.ledgerSvc.ReconcileStatuses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"repaired": repaired})
}
